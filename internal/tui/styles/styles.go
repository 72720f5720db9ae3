package styles

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

const (
	ScrollTrackChar = "│"
	ScrollThumbChar = "█"
)

type Theme struct {
	Name string

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color
	BgBase   color.Color
	BgAlt    color.Color
	Primary  color.Color
	Error    color.Color

	Row            lipgloss.Style
	RowAlt         lipgloss.Style
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
	Status         lipgloss.Style
	StatusKey      lipgloss.Style
	StatusError    lipgloss.Style
}

func dark() *Theme {
	t := &Theme{
		Name:     "dark",
		FgBase:   lipgloss.Color("#DFDBDD"),
		FgMuted:  lipgloss.Color("#858392"),
		FgSubtle: lipgloss.Color("#605F6B"),
		BgBase:   lipgloss.Color("#201F26"),
		BgAlt:    lipgloss.Color("#2D2C35"),
		Primary:  lipgloss.Color("#6B50FF"),
		Error:    lipgloss.Color("#EB4268"),
	}
	t.build()
	return t
}

func light() *Theme {
	t := &Theme{
		Name:     "light",
		FgBase:   lipgloss.Color("#201F26"),
		FgMuted:  lipgloss.Color("#605F6B"),
		FgSubtle: lipgloss.Color("#858392"),
		BgBase:   lipgloss.Color("#F1EFEF"),
		BgAlt:    lipgloss.Color("#E4E1E1"),
		Primary:  lipgloss.Color("#6B50FF"),
		Error:    lipgloss.Color("#C7254E"),
	}
	t.build()
	return t
}

func (t *Theme) build() {
	t.Row = lipgloss.NewStyle().Foreground(t.FgBase)
	t.RowAlt = lipgloss.NewStyle().Foreground(t.FgBase).Background(t.BgAlt)
	t.ScrollbarThumb = lipgloss.NewStyle().Foreground(t.Primary)
	t.ScrollbarTrack = lipgloss.NewStyle().Foreground(t.FgSubtle)
	t.Status = lipgloss.NewStyle().Foreground(t.FgMuted)
	t.StatusKey = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusError = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

var (
	mu      sync.RWMutex
	current = dark()
)

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetTheme switches the active theme. Unknown names select the dark theme.
func SetTheme(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == "light" {
		current = light()
		return
	}
	current = dark()
}
