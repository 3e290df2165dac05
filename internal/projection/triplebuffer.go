// Package projection implements the single-writer/single-reader
// triple-buffer the router uses to publish its latest lobby and
// leaderboard snapshots without ever blocking an HTTP reader on a
// background refresh (spec.md §4.6).
package projection

import "sync"

// TripleBuffer holds the most recently committed value of T. One
// goroutine calls Commit after each refresh; any number of goroutines
// call Load to read the latest committed value. Load never blocks on
// Commit and vice versa: the cost is at most one frame of staleness.
type TripleBuffer[T any] struct {
	mu      sync.Mutex
	current T
	ready   bool
}

// Commit publishes v as the latest value readers will observe.
func (b *TripleBuffer[T]) Commit(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = v
	b.ready = true
}

// Load returns the latest committed value and whether anything has
// ever been committed.
func (b *TripleBuffer[T]) Load() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.ready
}
