package scroller

import "log/slog"

// Direction is the direction of travel between two scroll samples.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// DirectionOf returns Down when the scroll position grew and Up otherwise,
// including when it did not move.
func DirectionOf(prev, cur int) Direction {
	if cur > prev {
		return Down
	}
	return Up
}

// Sample is the container geometry read at each scroll signal.
type Sample struct {
	ScrollTop    int
	ClientHeight int
	ScrollHeight int
}

// Row is one materialized item as handed to the container.
type Row struct {
	Index  int
	Height int
	View   string
}

// Container is the rendering surface the window drives. Rows are always
// added at the head or the tail, and removed from the head or the tail, so
// a container can keep them in a simple ordered list.
type Container interface {
	SetHeight(height int)
	Prepend(row *Row)
	Append(row *Row)
	Remove(row *Row)
	SetPadding(top, bottom int)
}

// Window tracks the contiguous range of materialized rows and the hidden
// counts above and below it.
type Window[T any] struct {
	store     *Store[T]
	container Container
	render    func(T) string
	rowHeight int
	buffer    int
	logger    *slog.Logger

	rows   []*Row
	top    int
	bottom int
}

// NewWindow returns an empty window over store.
func NewWindow[T any](store *Store[T], container Container, render func(T) string, rowHeight, buffer int, logger *slog.Logger) *Window[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Window[T]{
		store:     store,
		container: container,
		render:    render,
		rowHeight: rowHeight,
		buffer:    buffer,
		logger:    logger,
	}
}

// Bounds returns the first and last index (inclusive) that should stay
// materialized for the sample.
func (w *Window[T]) Bounds(s Sample) (firstKeep, lastKeep int) {
	firstVisible := s.ScrollTop / w.rowHeight
	firstKeep = max(0, firstVisible-w.buffer)
	lastVisible := (s.ScrollTop + s.ClientHeight) / w.rowHeight
	lastKeep = lastVisible + w.buffer
	return firstKeep, lastKeep
}

// UpdateTop moves the head of the window. Scrolling down drops rows above
// the buffer; scrolling up restores them. Nothing else changes the head.
func (w *Window[T]) UpdateTop(s Sample, dir Direction) {
	firstKeep, _ := w.Bounds(s)
	firstKeep = min(firstKeep, w.store.Len())

	switch dir {
	case Down:
		n := 0
		for n < len(w.rows) && w.rows[n].Index < firstKeep {
			w.container.Remove(w.rows[n])
			n++
		}
		w.rows = w.rows[n:]
		if n > 0 {
			w.logger.Debug("Removed rows from top", "count", n, "first_keep", firstKeep)
		}
	case Up:
		added := 0
		for i := w.top - 1; i >= firstKeep; i-- {
			item, ok := w.store.Get(i)
			if !ok {
				break
			}
			row := w.materialize(i, item)
			w.container.Prepend(row)
			w.rows = append([]*Row{row}, w.rows...)
			added++
		}
		if added > 0 {
			w.logger.Debug("Restored rows at top", "count", added, "first_keep", firstKeep)
		}
	}

	// The head only jumps freely while nothing is materialized; otherwise it
	// is pinned to the first row.
	if len(w.rows) > 0 {
		w.top = w.rows[0].Index
	} else {
		w.top = firstKeep
	}
	w.settle()
}

// UpdateBottom moves the tail of the window. Scrolling up drops rows past
// the buffer; scrolling down materializes new ones until the store runs out.
func (w *Window[T]) UpdateBottom(s Sample, dir Direction) {
	_, lastKeep := w.Bounds(s)

	switch dir {
	case Up:
		n := len(w.rows)
		for n > 0 && w.rows[n-1].Index > lastKeep {
			w.container.Remove(w.rows[n-1])
			n--
		}
		if removed := len(w.rows) - n; removed > 0 {
			w.logger.Debug("Removed rows from bottom", "count", removed, "last_keep", lastKeep)
		}
		w.rows = w.rows[:n]
	case Down:
		added := 0
		for i := w.top + len(w.rows); i <= lastKeep; i++ {
			item, ok := w.store.Get(i)
			if !ok {
				break
			}
			row := w.materialize(i, item)
			w.container.Append(row)
			w.rows = append(w.rows, row)
			added++
		}
		if added > 0 {
			w.logger.Debug("Appended rows at bottom", "count", added, "last_keep", lastKeep)
		}
	}
	w.settle()
}

func (w *Window[T]) materialize(i int, item T) *Row {
	return &Row{
		Index:  i,
		Height: w.rowHeight,
		View:   w.render(item),
	}
}

// settle recomputes the hidden tail and pushes padding to the container.
func (w *Window[T]) settle() {
	w.bottom = max(0, w.store.Len()-(w.top+len(w.rows)))
	w.container.SetPadding(w.PaddingTop(), w.PaddingBottom())
}

// Top returns the number of unmaterialized items above the window.
func (w *Window[T]) Top() int { return w.top }

// Bottom returns the number of unmaterialized items below the window.
func (w *Window[T]) Bottom() int { return w.bottom }

// Len returns the number of materialized rows.
func (w *Window[T]) Len() int { return len(w.rows) }

// PaddingTop returns the space reserved for the hidden head.
func (w *Window[T]) PaddingTop() int { return w.top * w.rowHeight }

// PaddingBottom returns the space reserved for the hidden tail.
func (w *Window[T]) PaddingBottom() int { return w.bottom * w.rowHeight }

// Rows returns the materialized rows in display order. The slice must not
// be modified.
func (w *Window[T]) Rows() []*Row {
	return w.rows
}
