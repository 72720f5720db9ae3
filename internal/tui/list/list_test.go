package list

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stringLoader struct {
	next  int
	limit int
	err   error
}

func (l *stringLoader) LoadMore(_ context.Context, count int) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.limit > 0 {
		count = max(0, min(count, l.limit-l.next))
	}
	out := make([]string, count)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", l.next)
		l.next++
	}
	return out, nil
}

type fixture struct {
	pane   *Pane
	loader *stringLoader
	clock  *fakeClock
	model  *Model[string]
}

func newFixture(t *testing.T, opts ...ListOption) *fixture {
	t.Helper()
	return newFixtureWith(t, &stringLoader{}, nil, opts...)
}

// newFixtureWith builds a 30x10 pane over loader. setup may adjust the
// scroller config before it is created.
func newFixtureWith(t *testing.T, loader *stringLoader, setup func(*scroller.Config[string]), opts ...ListOption) *fixture {
	t.Helper()
	pane := NewPane("main")
	pane.SetSize(30, 10)
	cfg := scroller.Config[string]{
		Element:    scroller.Selector("#main"),
		Height:     "100%",
		RowHeight:  1,
		RenderItem: func(s string) string { return s },
		Loader:     loader,
	}
	if setup != nil {
		setup(&cfg)
	}
	s, err := scroller.New(context.Background(), cfg,
		scroller.WithResolver(NewRegistry(pane)), scroller.WithBuffer(2))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Unix(1_000, 0)}
	opts = append([]ListOption{WithClock(clock.Now)}, opts...)
	return &fixture{
		pane:   pane,
		loader: loader,
		clock:  clock,
		model:  New(context.Background(), s, pane, opts...),
	}
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestPaneMirrorsScroller(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.Equal(t, 10, f.pane.Height())
	require.Len(t, f.pane.Rows(), 13)
	require.Equal(t, 50, f.pane.ContentHeight())
	require.Equal(t, 40, f.pane.MaxScrollTop())

	lines := f.pane.Lines(0)
	require.Len(t, lines, 10)
	assert.Equal(t, "item 0", strings.TrimSpace(ansi.Strip(lines[0])))
	assert.Equal(t, "item 9", strings.TrimSpace(ansi.Strip(lines[9])))

	// Offsets that land in the bottom padding render blank lines.
	lines = f.pane.Lines(20)
	for _, l := range lines {
		assert.Empty(t, strings.TrimSpace(ansi.Strip(l)))
	}
}

func TestKeyScrollIsThrottled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model

	m, _ = m.Update(keyPress("j"))
	require.Equal(t, 1, m.ScrollTop())
	require.Equal(t, 1, m.Stats().ScrollTop, "first signal runs right away")

	m, _ = m.Update(keyPress("j"))
	m, _ = m.Update(keyPress("j"))
	require.Equal(t, 3, m.ScrollTop())
	require.Equal(t, 1, m.Stats().ScrollTop, "burst is held back")

	f.clock.Advance(scroller.DefaultThrottleWait)
	m, _ = m.Update(scrollTickMsg{pane: "main", token: 2})
	require.Equal(t, 1, m.Stats().ScrollTop, "superseded tick is ignored")

	m, _ = m.Update(scrollTickMsg{pane: "other", token: 3})
	require.Equal(t, 1, m.Stats().ScrollTop, "ticks for other panes are ignored")

	m, _ = m.Update(scrollTickMsg{pane: "main", token: 3})
	require.Equal(t, 3, m.Stats().ScrollTop, "trailing run catches the final offset")
	require.Equal(t, 1, m.Stats().Top)
}

func TestEndLoadsMore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model
	require.Equal(t, 50, m.Stats().Loaded)

	m, _ = m.Update(keyPress("end"))
	require.Equal(t, 40, m.ScrollTop())
	st := m.Stats()
	require.Equal(t, 100, st.Loaded)
	require.Equal(t, 38, st.Top)
	require.Equal(t, 15, st.Materialized)
	require.Equal(t, st.Loaded, st.Top+st.Materialized+st.Bottom)

	f.clock.Advance(time.Second)
	m, _ = m.Update(keyPress("home"))
	require.Zero(t, m.ScrollTop())
	require.Zero(t, m.Stats().Top)

	// Nothing to do when already at the top.
	_, cmd := m.Update(keyPress("k"))
	require.Nil(t, cmd)
}

func TestPageKeys(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model

	m, _ = m.Update(keyPress("pgdown"))
	require.Equal(t, 10, m.ScrollTop())
	m, _ = m.Update(keyPress("d"))
	require.Equal(t, 15, m.ScrollTop())
	m, _ = m.Update(keyPress("u"))
	require.Equal(t, 10, m.ScrollTop())
	m, _ = m.Update(keyPress("b"))
	require.Zero(t, m.ScrollTop())
}

func TestMouseWheel(t *testing.T) {
	t.Parallel()

	t.Run("ignored by default", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m, cmd := f.model.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		require.Nil(t, cmd)
		require.Zero(t, m.ScrollTop())
	})

	t.Run("scrolls when enabled", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, WithEnableMouse())
		m, _ := f.model.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		require.Equal(t, ViewportDefaultScrollSize, m.ScrollTop())
		f.clock.Advance(time.Second)
		m, _ = m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
		require.Zero(t, m.ScrollTop())
	})
}

func TestLoaderErrorStopsList(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	boom := errors.New("backend down")
	f.loader.err = boom

	m, cmd := f.model.Update(keyPress("end"))
	require.NotNil(t, cmd)
	require.ErrorIs(t, m.Err(), boom)

	m, cmd = m.Update(keyPress("k"))
	require.Nil(t, cmd)
	require.Equal(t, 40, m.ScrollTop())
}

func TestSetSizeTallerViewportFillsOnNextDownSignal(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model
	require.Len(t, f.pane.Rows(), 13)

	m.SetSize(30, 20)
	require.Equal(t, 20, f.pane.Height())
	// The same offset with a taller viewport is a tie, which only trims, so
	// rows only grow on the next downward signal.
	require.Len(t, f.pane.Rows(), 13)

	m.Update(keyPress("j"))
	require.Equal(t, seqRows(0, 23), rowIndexes(f.pane.Rows()))
}

func TestView(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	view := ansi.Strip(f.model.View())
	require.Contains(t, view, "item 0")
	require.Contains(t, view, "█")
	require.Len(t, strings.Split(view, "\n"), 10)

	empty := NewPane("empty")
	m := New(context.Background(), f.model.scroller, empty)
	require.Empty(t, m.View(), "a pane without a size renders nothing")
}

func TestViewGolden(t *testing.T) {
	t.Parallel()

	t.Run("top", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		golden.RequireEqual(t, []byte(ansi.Strip(f.model.View())))
	})

	t.Run("middle", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, WithThrottle(0))
		m, _ := f.model.Update(keyPress("pgdown"))
		m, _ = m.Update(keyPress("pgdown"))
		require.Equal(t, 20, m.ScrollTop())
		require.Equal(t, 18, m.Stats().Top)
		golden.RequireEqual(t, []byte(ansi.Strip(m.View())))
	})

	t.Run("padding edge", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m, _ := f.model.Update(keyPress("j"))
		require.Equal(t, seqRows(0, 13), rowIndexes(f.pane.Rows()))
		// The burst is held back, so the offset runs past the last row
		// into the bottom padding.
		m.ScrollBy(7)
		require.Equal(t, 8, m.ScrollTop())
		require.Equal(t, 1, m.Stats().ScrollTop)
		golden.RequireEqual(t, []byte(ansi.Strip(m.View())))
	})

	t.Run("end", func(t *testing.T) {
		t.Parallel()
		f := newFixtureWith(t, &stringLoader{limit: 60}, nil, WithThrottle(0))
		m, _ := f.model.Update(keyPress("end"))
		m, _ = m.Update(keyPress("end"))
		require.Equal(t, 50, m.ScrollTop())
		st := m.Stats()
		require.Equal(t, 60, st.Loaded)
		require.Zero(t, st.Bottom)
		golden.RequireEqual(t, []byte(ansi.Strip(m.View())))
	})

	t.Run("row height 3", func(t *testing.T) {
		t.Parallel()
		f := newFixtureWith(t, &stringLoader{}, func(cfg *scroller.Config[string]) {
			cfg.RowHeight = 3
			cfg.RenderItem = func(s string) string { return s + "\n  detail\n  more" }
		}, WithThrottle(0))
		require.Equal(t, seqRows(0, 5), rowIndexes(f.pane.Rows()))
		m := f.model
		m.ScrollBy(4)
		require.Equal(t, seqRows(0, 6), rowIndexes(f.pane.Rows()))
		require.Equal(t, 150, f.pane.ContentHeight())
		golden.RequireEqual(t, []byte(ansi.Strip(m.View())))
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	p := NewPane("side")
	r := NewRegistry(p)
	got, ok := r.Lookup("#side")
	require.True(t, ok)
	require.Same(t, p, got)
	got, ok = r.Lookup("side")
	require.True(t, ok)
	require.Same(t, p, got)
	_, ok = r.Lookup("main")
	require.False(t, ok)
}

func rowIndexes(rows []*scroller.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

func seqRows(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
