package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/vscroll/internal/tui/list"
	"github.com/charmbracelet/vscroll/internal/tui/styles"
)

// MainPane is the name of the pane the list renders into.
const MainPane = "main"

var quitKey = key.NewBinding(
	key.WithKeys("q", "ctrl+c"),
	key.WithHelp("q", "quit"),
)

// appModel is the top level program: the list plus a status line.
type appModel[T any] struct {
	list   *list.Model[T]
	title  string
	width  int
	height int
	err    error
}

// New returns the root model for a list.
func New[T any](l *list.Model[T], title string) tea.Model {
	return &appModel[T]{list: l, title: title}
}

// Init implements tea.Model.
func (a *appModel[T]) Init() tea.Cmd {
	return a.list.Init()
}

// Update implements tea.Model.
func (a *appModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// One column for the scrollbar and one line for the status bar.
		return a, a.list.SetSize(max(0, msg.Width-1), max(0, msg.Height-1))
	case list.ErrorMsg:
		a.err = msg.Err
		return a, tea.Quit
	case tea.KeyPressMsg:
		if key.Matches(msg, quitKey) {
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// Err returns the error that ended the program, if any.
func (a *appModel[T]) Err() error {
	return a.err
}

func (a *appModel[T]) status() string {
	t := styles.CurrentTheme()
	if a.err != nil {
		return t.StatusError.Render("error: " + a.err.Error())
	}
	st := a.list.Stats()
	first, last := st.Top, st.Top+st.Materialized-1
	rows := "rows -"
	if st.Materialized > 0 {
		rows = fmt.Sprintf("rows %d-%d", first, last)
	}
	parts := []string{
		t.StatusKey.Render(a.title),
		t.Status.Render(rows),
		t.Status.Render(fmt.Sprintf("above %d", st.Top)),
		t.Status.Render(fmt.Sprintf("below %d", st.Bottom)),
		t.Status.Render(fmt.Sprintf("loaded %d", st.Loaded)),
		t.Status.Render(fmt.Sprintf("offset %d", a.list.ScrollTop())),
	}
	line := strings.Join(parts, t.Status.Render(" · "))
	return lipgloss.NewStyle().MaxWidth(a.width).Render(line)
}

// View implements tea.Model.
func (a *appModel[T]) View() tea.View {
	content := lipgloss.JoinVertical(lipgloss.Left, a.list.View(), a.status())
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// ErrFromModel extracts the error that ended a program started with a model
// from New.
func ErrFromModel(m tea.Model) error {
	if e, ok := m.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, m tea.Model, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return err
	}
	return ErrFromModel(final)
}
