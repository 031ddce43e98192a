package store

import (
	"context"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of a Collection.
type Snapshot[T any] struct {
	Items     []T
	Loading   bool
	Error     string
	FetchedAt time.Time
}

// Collection holds one in-memory list populated from the backend. Each load
// replaces the items wholesale; a failed load keeps the previous items and
// records the error text.
type Collection[T any] struct {
	mu        sync.RWMutex
	items     []T
	loading   bool
	err       string
	fetchedAt time.Time
}

func (c *Collection[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	items, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return nil, err
	}
	c.items = items
	c.fetchedAt = time.Now()
	return clone(items), nil
}

// Set replaces the items without a fetch.
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = clone(items)
	c.err = ""
	c.fetchedAt = time.Now()
}

func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot[T]{
		Items:     clone(c.items),
		Loading:   c.loading,
		Error:     c.err,
		FetchedAt: c.fetchedAt,
	}
}

// Reset drops items and error state.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loading = false
	c.err = ""
	c.fetchedAt = time.Time{}
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
