package list

import (
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/vscroll/internal/tui/styles"
	"github.com/charmbracelet/x/ansi"
)

// Pane is a fixed-height terminal region holding materialized rows between
// top and bottom padding. It implements scroller.Container.
type Pane struct {
	name          string
	width         int
	height        int
	parentHeight  int
	rows          []*scroller.Row
	paddingTop    int
	paddingBottom int
}

var (
	_ scroller.Container   = (*Pane)(nil)
	_ scroller.ParentSizer = (*Pane)(nil)
)

// NewPane returns an empty pane.
func NewPane(name string) *Pane {
	return &Pane{name: name}
}

func (p *Pane) Name() string { return p.name }

// SetHeight implements scroller.Container.
func (p *Pane) SetHeight(height int) {
	p.height = max(0, height)
}

// Prepend implements scroller.Container.
func (p *Pane) Prepend(row *scroller.Row) {
	p.rows = slices.Insert(p.rows, 0, row)
}

// Append implements scroller.Container.
func (p *Pane) Append(row *scroller.Row) {
	p.rows = append(p.rows, row)
}

// Remove implements scroller.Container.
func (p *Pane) Remove(row *scroller.Row) {
	switch {
	case len(p.rows) == 0:
	case p.rows[0] == row:
		p.rows = p.rows[1:]
	case p.rows[len(p.rows)-1] == row:
		p.rows = p.rows[:len(p.rows)-1]
	default:
		if i := slices.Index(p.rows, row); i >= 0 {
			p.rows = slices.Delete(p.rows, i, i+1)
		}
	}
}

// SetPadding implements scroller.Container.
func (p *Pane) SetPadding(top, bottom int) {
	p.paddingTop = top
	p.paddingBottom = bottom
}

// ParentHeight implements scroller.ParentSizer.
func (p *Pane) ParentHeight() int { return p.parentHeight }

// SetSize sets the width of the pane and the height of the area it lives
// in. The pane's own height is owned by the scroller.
func (p *Pane) SetSize(width, parentHeight int) {
	p.width = max(0, width)
	p.parentHeight = max(0, parentHeight)
}

func (p *Pane) Width() int  { return p.width }
func (p *Pane) Height() int { return p.height }

// Rows returns the attached rows in display order.
func (p *Pane) Rows() []*scroller.Row { return p.rows }

// ContentHeight returns the full scrollable extent.
func (p *Pane) ContentHeight() int {
	h := p.paddingTop + p.paddingBottom
	for _, r := range p.rows {
		h += r.Height
	}
	return h
}

// MaxScrollTop returns the largest valid scroll offset.
func (p *Pane) MaxScrollTop() int {
	return max(0, p.ContentHeight()-p.height)
}

// Lines returns the pane's visible lines for a scroll offset. Lines that
// fall in the padding are blank.
func (p *Pane) Lines(scrollTop int) []string {
	lines := make([]string, p.height)
	if p.height == 0 {
		return lines
	}
	t := styles.CurrentTheme()

	// Skip rows above the viewport.
	offset := p.paddingTop
	i := 0
	for i < len(p.rows) && offset+p.rows[i].Height <= scrollTop {
		offset += p.rows[i].Height
		i++
	}
	for ; i < len(p.rows) && offset < scrollTop+p.height; i++ {
		row := p.rows[i]
		style := t.Row
		if row.Index%2 == 1 {
			style = t.RowAlt
		}
		for j, line := range p.rowLines(row) {
			y := offset + j - scrollTop
			if y < 0 || y >= p.height {
				continue
			}
			lines[y] = style.Width(p.width).Render(line)
		}
		offset += row.Height
	}
	return lines
}

// rowLines fits a row view into exactly Height lines of at most the pane
// width.
func (p *Pane) rowLines(row *scroller.Row) []string {
	src := strings.Split(row.View, "\n")
	out := make([]string, row.Height)
	for i := range out {
		if i < len(src) {
			out[i] = ansi.Truncate(src[i], p.width, "…")
		}
	}
	return out
}

// View renders the visible lines as a block of the pane's size.
func (p *Pane) View(scrollTop int) string {
	return lipgloss.NewStyle().
		Width(p.width).
		Height(p.height).
		Render(strings.Join(p.Lines(scrollTop), "\n"))
}

// Scrollbar renders a one column scrollbar for the pane. It is empty when
// the content fits.
func (p *Pane) Scrollbar(scrollTop int) string {
	vh := p.height
	ch := p.ContentHeight()
	if vh <= 0 || ch <= vh {
		return ""
	}
	t := styles.CurrentTheme()

	thumbH := min(max(1, vh*vh/ch), vh)
	thumbTop := scrollTop * (vh - thumbH) / (ch - vh)
	thumbTop = max(0, min(thumbTop, vh-thumbH))

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = t.ScrollbarThumb.Render(styles.ScrollThumbChar)
		} else {
			rows[i] = t.ScrollbarTrack.Render(styles.ScrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
