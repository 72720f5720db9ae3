package scroller

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	DefaultPageSize  = 50
	DefaultThreshold = 40
)

// Loader supplies more items on demand. LoadMore must return synchronously
// and in append order. Returning fewer than count items means the source is
// exhausted for now; it is not an error.
type Loader[T any] interface {
	LoadMore(ctx context.Context, count int) ([]T, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[T any] func(ctx context.Context, count int) ([]T, error)

// LoadMore implements Loader.
func (f LoaderFunc[T]) LoadMore(ctx context.Context, count int) ([]T, error) {
	return f(ctx, count)
}

// Paginator grows a store when the viewport gets close to the end of the
// materialized content.
type Paginator[T any] struct {
	store     *Store[T]
	loader    Loader[T]
	pageSize  int
	threshold int
	logger    *slog.Logger
}

// NewPaginator returns a paginator feeding store from loader.
func NewPaginator[T any](store *Store[T], loader Loader[T], pageSize, threshold int, logger *slog.Logger) *Paginator[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Paginator[T]{
		store:     store,
		loader:    loader,
		pageSize:  pageSize,
		threshold: threshold,
		logger:    logger,
	}
}

// NearEnd reports whether the sample is within the threshold of the end of
// the scrollable extent.
func (p *Paginator[T]) NearEnd(s Sample) bool {
	return s.ScrollHeight-(s.ClientHeight+s.ScrollTop) < p.threshold
}

// MaybeLoad requests one page when the sample is near the end and appends
// the result. It returns the number of items appended.
func (p *Paginator[T]) MaybeLoad(ctx context.Context, s Sample) (int, error) {
	if !p.NearEnd(s) {
		return 0, nil
	}
	return p.load(ctx, p.pageSize)
}

// LoadInitial requests enough whole pages to fill a viewport of the given
// height.
func (p *Paginator[T]) LoadInitial(ctx context.Context, viewportHeight, rowHeight int) (int, error) {
	minCount := ceilDiv(viewportHeight, rowHeight)
	pages := ceilDiv(minCount, p.pageSize)
	if pages == 0 {
		return 0, nil
	}
	return p.load(ctx, pages*p.pageSize)
}

func (p *Paginator[T]) load(ctx context.Context, count int) (int, error) {
	items, err := p.loader.LoadMore(ctx, count)
	if err != nil {
		return 0, fmt.Errorf("load more (%d): %w", count, err)
	}
	p.store.Append(items...)
	if len(items) < count {
		p.logger.Debug("Loader returned a short page", "requested", count, "got", len(items), "total", p.store.Len())
	} else {
		p.logger.Debug("Loaded page", "count", len(items), "total", p.store.Len())
	}
	return len(items), nil
}

func ceilDiv(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
