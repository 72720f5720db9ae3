package scroller

import "iter"

// Store is an append-only ordered sequence of items. An item's identity is
// its index; insertion order is display order.
type Store[T any] struct {
	items []T
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Append adds items to the end of the store.
func (s *Store[T]) Append(items ...T) {
	s.items = append(s.items, items...)
}

// Len returns the number of items loaded so far.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Get returns the item at index i.
func (s *Store[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Seq iterates over the items in display order.
func (s *Store[T]) Seq() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range s.items {
			if !yield(i, item) {
				return
			}
		}
	}
}
