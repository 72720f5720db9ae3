package list

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/vscroll/internal/scroller"
)

const ViewportDefaultScrollSize = 3

// ErrorMsg reports a failed scroll signal. The list stops handling signals
// after one.
type ErrorMsg struct {
	Err error
}

type scrollTickMsg struct {
	pane  string
	token uint64
}

type confOptions struct {
	keyMap      KeyMap
	wait        time.Duration
	now         func() time.Time
	enableMouse bool
}

type ListOption func(*confOptions)

// WithKeyMap sets the key bindings.
func WithKeyMap(keyMap KeyMap) ListOption {
	return func(l *confOptions) {
		l.keyMap = keyMap
	}
}

// WithThrottle sets how often scroll handling may run during a burst.
func WithThrottle(wait time.Duration) ListOption {
	return func(l *confOptions) {
		l.wait = wait
	}
}

// WithClock replaces the clock used by the throttle.
func WithClock(now func() time.Time) ListOption {
	return func(l *confOptions) {
		l.now = now
	}
}

func WithEnableMouse() ListOption {
	return func(l *confOptions) {
		l.enableMouse = true
	}
}

// Model is the host side of a virtualized list: it owns the scroll offset,
// turns keys and wheel events into throttled scroll signals and renders the
// pane.
type Model[T any] struct {
	*confOptions

	ctx      context.Context
	scroller *scroller.Scroller[T]
	pane     *Pane
	throttle *scroller.Throttle

	scrollTop int
	err       error
}

// New returns a list driving s, which must render into pane.
func New[T any](ctx context.Context, s *scroller.Scroller[T], pane *Pane, opts ...ListOption) *Model[T] {
	conf := &confOptions{
		keyMap: DefaultKeyMap(),
		wait:   scroller.DefaultThrottleWait,
	}
	for _, opt := range opts {
		opt(conf)
	}
	return &Model[T]{
		confOptions: conf,
		ctx:         ctx,
		scroller:    s,
		pane:        pane,
		throttle:    scroller.NewThrottle(conf.wait, conf.now),
	}
}

// Init returns no command; the first window is materialized by the
// scroller at construction.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles keys, mouse wheel and deferred scroll ticks.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	if m.err != nil {
		return m, nil
	}
	switch msg := msg.(type) {
	case scrollTickMsg:
		if msg.pane != m.pane.Name() || !m.throttle.Due(msg.token) {
			return m, nil
		}
		return m, m.handleScroll()
	case tea.MouseWheelMsg:
		if !m.enableMouse {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseWheelDown:
			return m, m.ScrollBy(ViewportDefaultScrollSize)
		case tea.MouseWheelUp:
			return m, m.ScrollBy(-ViewportDefaultScrollSize)
		}
	case tea.KeyPressMsg:
		height := m.pane.Height()
		switch {
		case key.Matches(msg, m.keyMap.Down):
			return m, m.ScrollBy(m.scroller.RowHeight())
		case key.Matches(msg, m.keyMap.Up):
			return m, m.ScrollBy(-m.scroller.RowHeight())
		case key.Matches(msg, m.keyMap.HalfPageDown):
			return m, m.ScrollBy(height / 2)
		case key.Matches(msg, m.keyMap.HalfPageUp):
			return m, m.ScrollBy(-height / 2)
		case key.Matches(msg, m.keyMap.PageDown):
			return m, m.ScrollBy(height)
		case key.Matches(msg, m.keyMap.PageUp):
			return m, m.ScrollBy(-height)
		case key.Matches(msg, m.keyMap.End):
			return m, m.GoToBottom()
		case key.Matches(msg, m.keyMap.Home):
			return m, m.GoToTop()
		}
	}
	return m, nil
}

// ScrollBy moves the scroll offset by delta lines and emits a scroll
// signal if it changed.
func (m *Model[T]) ScrollBy(delta int) tea.Cmd {
	return m.scrollTo(m.scrollTop + delta)
}

func (m *Model[T]) GoToTop() tea.Cmd {
	return m.scrollTo(0)
}

func (m *Model[T]) GoToBottom() tea.Cmd {
	return m.scrollTo(m.pane.MaxScrollTop())
}

func (m *Model[T]) scrollTo(top int) tea.Cmd {
	top = max(0, min(top, m.pane.MaxScrollTop()))
	if top == m.scrollTop {
		return nil
	}
	m.scrollTop = top
	return m.signal()
}

// signal runs the scroll handler through the throttle. The deferred run is
// always scheduled so the final offset is handled once the burst settles.
func (m *Model[T]) signal() tea.Cmd {
	runNow, token := m.throttle.Call()
	var cmds []tea.Cmd
	if runNow {
		cmds = append(cmds, m.handleScroll())
	}
	name := m.pane.Name()
	cmds = append(cmds, tea.Tick(m.throttle.Wait(), func(time.Time) tea.Msg {
		return scrollTickMsg{pane: name, token: token}
	}))
	return tea.Batch(cmds...)
}

func (m *Model[T]) handleScroll() tea.Cmd {
	sample := scroller.Sample{
		ScrollTop:    m.scrollTop,
		ClientHeight: m.pane.Height(),
		ScrollHeight: m.pane.ContentHeight(),
	}
	if err := m.scroller.Scroll(m.ctx, sample); err != nil {
		slog.Error("Scroll signal failed", "error", err, "scroll_top", m.scrollTop)
		m.err = err
		return func() tea.Msg { return ErrorMsg{Err: err} }
	}
	return nil
}

// SetSize sets the pane width and the height available to it, re-resolves
// the pane height and re-runs the scroll handler at the current offset. That
// run is a tie, which only trims, so a taller viewport is filled by the next
// downward scroll signal.
func (m *Model[T]) SetSize(width, parentHeight int) tea.Cmd {
	m.pane.SetSize(width, parentHeight)
	if _, err := m.scroller.Resize(); err != nil {
		slog.Warn("Could not resize list", "error", err)
	}
	m.scrollTop = max(0, min(m.scrollTop, m.pane.MaxScrollTop()))
	if m.err != nil {
		return nil
	}
	return m.handleScroll()
}

// ScrollTop returns the current scroll offset.
func (m *Model[T]) ScrollTop() int { return m.scrollTop }

// Stats returns the scroller state.
func (m *Model[T]) Stats() scroller.Stats { return m.scroller.Stats() }

// Err returns the error that stopped the list, if any.
func (m *Model[T]) Err() error { return m.err }

// KeyMap returns the active key bindings.
func (m *Model[T]) KeyMap() KeyMap { return m.keyMap }

// View renders the pane and its scrollbar.
func (m *Model[T]) View() string {
	if m.pane.Width() <= 0 || m.pane.Height() <= 0 {
		return ""
	}
	view := m.pane.View(m.scrollTop)
	if bar := m.pane.Scrollbar(m.scrollTop); bar != "" {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, bar)
	}
	return view
}
