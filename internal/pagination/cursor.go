// Package pagination keeps the page state of one paginated collection.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dancerfit/admin-dashboard/internal/domain"
)

var (
	ErrInvalidPage    = errors.New("page must be 1 or greater")
	ErrNoNextPage     = errors.New("no next page")
	ErrNoPreviousPage = errors.New("no previous page")
	// ErrStale is returned when a newer fetch was issued while this one was in
	// flight. The response is dropped and the cursor keeps the newer state.
	ErrStale = errors.New("stale page response discarded")
)

// Fetcher loads one page of a collection.
type Fetcher[T any] func(ctx context.Context, page int) (domain.Envelope[T], error)

// Cursor holds the envelope of one collection. Every fetch replaces the
// whole envelope under the lock, so data and paging fields always agree.
type Cursor[T any] struct {
	name  string
	fetch Fetcher[T]

	mu     sync.Mutex
	state  domain.Envelope[T]
	issued uint64 // token of the most recent fetch
	loaded bool
}

// New returns a cursor positioned on an empty page 1.
func New[T any](name string, fetch Fetcher[T]) *Cursor[T] {
	return &Cursor[T]{
		name:  name,
		fetch: fetch,
		state: domain.EmptyEnvelope[T](),
	}
}

func (c *Cursor[T]) Name() string { return c.name }

// Fetch loads page and installs it as the current state.
func (c *Cursor[T]) Fetch(ctx context.Context, page int) (domain.Envelope[T], error) {
	if page < 1 {
		return c.Snapshot(), ErrInvalidPage
	}

	c.mu.Lock()
	c.issued++
	token := c.issued
	c.mu.Unlock()

	env, err := c.fetch(ctx, page)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("fetch %s page %d: %w", c.name, page, err)
	}
	if env.Data == nil {
		env.Data = []T{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.issued {
		return c.state.Clone(), ErrStale
	}
	c.state = env.Clone()
	c.loaded = true
	return c.state.Clone(), nil
}

// Next fetches the following page when the server advertised one.
func (c *Cursor[T]) Next(ctx context.Context) (domain.Envelope[T], error) {
	c.mu.Lock()
	ok, page := c.state.HasNext(), c.state.CurrentPage+1
	c.mu.Unlock()
	if !ok {
		return c.Snapshot(), ErrNoNextPage
	}
	return c.Fetch(ctx, page)
}

// Previous fetches the preceding page when the server advertised one.
func (c *Cursor[T]) Previous(ctx context.Context) (domain.Envelope[T], error) {
	c.mu.Lock()
	ok, page := c.state.HasPrevious(), c.state.CurrentPage-1
	c.mu.Unlock()
	if !ok || page < 1 {
		return c.Snapshot(), ErrNoPreviousPage
	}
	return c.Fetch(ctx, page)
}

// Refresh re-fetches the last known page.
func (c *Cursor[T]) Refresh(ctx context.Context) (domain.Envelope[T], error) {
	return c.Fetch(ctx, c.CurrentPage())
}

// Update applies a local edit to the current state, e.g. pruning a deleted
// record. It doesn't count as a fetch.
func (c *Cursor[T]) Update(fn func(env *domain.Envelope[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state.Clone()
	fn(&next)
	c.state = next
}

func (c *Cursor[T]) Snapshot() domain.Envelope[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Cursor[T]) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.CurrentPage < 1 {
		return 1
	}
	return c.state.CurrentPage
}

func (c *Cursor[T]) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasNext()
}

func (c *Cursor[T]) CanPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasPrevious()
}

// Loaded reports whether at least one fetch has been applied.
func (c *Cursor[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
