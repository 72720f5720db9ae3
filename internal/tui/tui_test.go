package tui

import (
	"context"
	"errors"
	"strconv"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/vscroll/internal/tui/list"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *appModel[int] {
	t.Helper()
	pane := list.NewPane(MainPane)
	pane.SetSize(40, 10)
	next := 0
	s, err := scroller.New(context.Background(), scroller.Config[int]{
		Element:    scroller.Handle(pane),
		Height:     "100%",
		RowHeight:  1,
		RenderItem: strconv.Itoa,
		Loader: scroller.LoaderFunc[int](func(_ context.Context, count int) ([]int, error) {
			out := make([]int, count)
			for i := range out {
				out[i] = next
				next++
			}
			return out, nil
		}),
	}, scroller.WithBuffer(2))
	require.NoError(t, err)
	return New(list.New(context.Background(), s, pane), "numbers").(*appModel[int])
}

func TestStatusLine(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	_, _ = a.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	status := ansi.Strip(a.status())
	require.Contains(t, status, "numbers")
	require.Contains(t, status, "rows 0-12")
	require.Contains(t, status, "above 0")
	require.Contains(t, status, "below 37")
	require.Contains(t, status, "loaded 50")
	require.Contains(t, status, "offset 0")
}

func TestErrorQuits(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	boom := errors.New("boom")
	m, cmd := a.Update(list.ErrorMsg{Err: boom})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.ErrorIs(t, ErrFromModel(m), boom)
	require.Contains(t, ansi.Strip(a.status()), "error: boom")
}

func TestQuitKey(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	_, cmd := a.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.NoError(t, ErrFromModel(a))
}
