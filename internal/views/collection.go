package views

import (
	"context"
	"strings"
	"sync"
)

// Matches reports whether query occurs case-insensitively in at least one of
// fields. An empty query matches everything.
func Matches(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// collection holds one fetched table slice plus the text filter over it.
// Every load gets a generation number; a response is applied only if no newer
// load has started since and its context is still live.
type collection[T any] struct {
	mu      sync.RWMutex
	gen     uint64
	loading bool
	rows    []T
	query   string
	fields  func(*T) []string
}

func newCollection[T any](fields func(*T) []string) *collection[T] {
	return &collection[T]{fields: fields}
}

func (c *collection[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.loading = true
	return c.gen
}

// finish stores rows for generation gen. It returns false when the response
// was discarded.
func (c *collection[T]) finish(ctx context.Context, gen uint64, rows []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.loading = false
	if ctx.Err() != nil {
		return false
	}
	if rows == nil {
		rows = []T{}
	}
	c.rows = rows
	return true
}

func (c *collection[T]) setQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

func (c *collection[T]) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

func (c *collection[T]) isLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.rows...)
}

// visible applies the text filter to the in-memory rows.
func (c *collection[T]) visible() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.rows))
	for i := range c.rows {
		if c.fields == nil || Matches(c.query, c.fields(&c.rows[i])...) {
			out = append(out, c.rows[i])
		}
	}
	return out
}

// find returns a copy of the first row for which match is true.
func (c *collection[T]) find(match func(*T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.rows {
		if match(&c.rows[i]) {
			return c.rows[i], true
		}
	}
	var zero T
	return zero, false
}
