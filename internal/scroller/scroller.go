// Package scroller keeps a long, growing list virtualized: only a window of
// rows around the viewport is materialized and the rest is stood in for by
// padding, so the scroll range behaves as if every item were rendered.
package scroller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

const DefaultBuffer = 10

// Config holds the required construction settings.
type Config[T any] struct {
	// Element is the container to render into.
	Element Element
	// Height is the fixed extent of the container: an int number of lines,
	// or a string such as "20", "20px" or "50%".
	Height any
	// RowHeight is the extent of a single row. Must be positive.
	RowHeight int
	// RenderItem turns one item into a row view. It must be deterministic.
	RenderItem func(T) string
	// Loader supplies more items.
	Loader Loader[T]
}

type options struct {
	pageSize  int
	buffer    int
	threshold int
	resolver  Resolver
	logger    *slog.Logger
}

// Option configures optional scroller settings.
type Option func(*options)

// WithPageSize sets how many items each pagination call requests.
// Non-positive values keep the default.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithBuffer sets how many rows stay materialized beyond each viewport
// edge. Negative values keep the default.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.buffer = n
		}
	}
}

// WithThreshold sets the distance from the end that triggers pagination.
func WithThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.threshold = n
		}
	}
}

// WithResolver sets the resolver used for selector elements.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Stats is a snapshot of the scroller state.
type Stats struct {
	Loaded        int
	Top           int
	Materialized  int
	Bottom        int
	PaddingTop    int
	PaddingBottom int
	ScrollTop     int
}

// Scroller coordinates pagination and the materialized window for a single
// container. It is driven from one goroutine.
type Scroller[T any] struct {
	id        string
	container Container
	height    Height
	rowHeight int
	logger    *slog.Logger

	store     *Store[T]
	paginator *Paginator[T]
	window    *Window[T]

	viewportHeight int
	scrollTop      int
}

// New validates cfg, loads enough data to fill the viewport and
// materializes the first window.
func New[T any](ctx context.Context, cfg Config[T], opts ...Option) (*Scroller[T], error) {
	o := options{
		pageSize:  DefaultPageSize,
		buffer:    DefaultBuffer,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if cfg.Element == nil {
		return nil, NewInvalidElementError("", nil)
	}
	container, err := cfg.Element.resolve(o.resolver)
	if err != nil {
		return nil, err
	}
	height, err := ParseHeight(cfg.Height)
	if err != nil {
		return nil, err
	}
	if cfg.RowHeight <= 0 {
		return nil, NewInvalidRowHeightError(cfg.RowHeight)
	}
	if cfg.RenderItem == nil {
		return nil, NewInvalidCallbackError("renderItem")
	}
	if cfg.Loader == nil {
		return nil, NewInvalidCallbackError("loadMore")
	}
	viewportHeight, err := height.Resolve(container)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	logger := o.logger.With("scroller", id)
	store := NewStore[T]()
	s := &Scroller[T]{
		id:             id,
		container:      container,
		height:         height,
		rowHeight:      cfg.RowHeight,
		logger:         logger,
		store:          store,
		paginator:      NewPaginator(store, cfg.Loader, o.pageSize, o.threshold, logger),
		window:         NewWindow(store, container, cfg.RenderItem, cfg.RowHeight, o.buffer, logger),
		viewportHeight: viewportHeight,
	}
	container.SetHeight(viewportHeight)

	if _, err := s.paginator.LoadInitial(ctx, viewportHeight, cfg.RowHeight); err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}
	first := Sample{ClientHeight: viewportHeight}
	s.window.UpdateTop(first, Down)
	s.window.UpdateBottom(first, Down)

	logger.Debug("Scroller ready",
		"viewport_height", viewportHeight,
		"row_height", cfg.RowHeight,
		"page_size", o.pageSize,
		"buffer", o.buffer,
		"loaded", store.Len(),
		"materialized", s.window.Len(),
	)
	return s, nil
}

// Scroll handles one scroll signal: it may grow the store, then moves the
// top and bottom edges of the window in the direction of travel.
func (s *Scroller[T]) Scroll(ctx context.Context, sample Sample) error {
	if _, err := s.paginator.MaybeLoad(ctx, sample); err != nil {
		return err
	}
	dir := DirectionOf(s.scrollTop, sample.ScrollTop)
	s.window.UpdateTop(sample, dir)
	s.window.UpdateBottom(sample, dir)
	s.scrollTop = sample.ScrollTop

	s.logger.Debug("Scrolled",
		"direction", dir.String(),
		"scroll_top", sample.ScrollTop,
		"top", s.window.Top(),
		"materialized", s.window.Len(),
		"bottom", s.window.Bottom(),
	)
	return nil
}

// Resize re-applies the container extent, resolving percentage heights
// against the container's current parent height. It returns the viewport
// height in lines.
func (s *Scroller[T]) Resize() (int, error) {
	h, err := s.height.Resolve(s.container)
	if err != nil {
		return s.viewportHeight, err
	}
	s.viewportHeight = h
	s.container.SetHeight(h)
	return h, nil
}

// ID returns the instance identifier used in logs.
func (s *Scroller[T]) ID() string { return s.id }

// ViewportHeight returns the fixed extent of the container in lines.
func (s *Scroller[T]) ViewportHeight() int { return s.viewportHeight }

// RowHeight returns the extent of one row.
func (s *Scroller[T]) RowHeight() int { return s.rowHeight }

// ScrollHeight returns the full scrollable extent: padding plus
// materialized rows.
func (s *Scroller[T]) ScrollHeight() int {
	return s.window.PaddingTop() + s.window.Len()*s.rowHeight + s.window.PaddingBottom()
}

// Rows returns the materialized rows in display order.
func (s *Scroller[T]) Rows() []*Row { return s.window.Rows() }

// Store returns the backing store.
func (s *Scroller[T]) Store() *Store[T] { return s.store }

// Stats returns a snapshot of the current state.
func (s *Scroller[T]) Stats() Stats {
	return Stats{
		Loaded:        s.store.Len(),
		Top:           s.window.Top(),
		Materialized:  s.window.Len(),
		Bottom:        s.window.Bottom(),
		PaddingTop:    s.window.PaddingTop(),
		PaddingBottom: s.window.PaddingBottom(),
		ScrollTop:     s.scrollTop,
	}
}
