package engine

import (
	"github.com/loupedev/loupe/internal/filter"
	"github.com/loupedev/loupe/internal/record"
)

// requestRescan schedules a full recomputation of the matching index.
// Filter predicates are not monotonic, so no incremental retraction is
// attempted; the scan loop is time-sliced and cheap relative to I/O.
// Caller holds e.mu.
func (e *Engine) requestRescan() {
	e.rescan = true
	e.notify()
}

// SetLevelFilter replaces the level-threshold slot and rescans.
func (e *Engine) SetLevelFilter(min record.Level) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters.SetLevel(min)
	e.requestRescan()
}

// PushFilter stacks a new predicate and rescans.
func (e *Engine) PushFilter(entry filter.Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters.Push(entry)
	e.requestRescan()
}

// PushExpression compiles an expression-grammar filter and stacks it.
// Malformed expressions are rejected here and never reach the scan loop.
func (e *Engine) PushExpression(src string) error {
	entry, err := filter.Expression(src)
	if err != nil {
		return err
	}
	e.PushFilter(entry)
	return nil
}

// PopFilter removes the most recently pushed predicate and rescans.
// Reports whether there was one to pop.
func (e *Engine) PopFilter() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.filters.Pop() {
		return false
	}
	e.requestRescan()
	return true
}

// ClearFilters drops every filter including the level threshold and rescans.
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.filters.Empty() {
		return
	}
	e.filters.Clear()
	e.requestRescan()
}

// SetSorted toggles between append-order and sort-key-ordered indexing.
// Changing mode invalidates the index ordering, so it rescans.
func (e *Engine) SetSorted(sorted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sorted == sorted {
		return
	}
	e.sorted = sorted
	e.requestRescan()
}

// Sorted reports the current index ordering mode.
func (e *Engine) Sorted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sorted
}

// ClearAll empties the store, resets sequencing, and invalidates everything
// derived from it: matching index, scan cursor, selection, and cursor
// bindings. Filters stay active.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.matches = e.matches[:0]
	e.scanPos = 0
	e.selected = make(map[int64]struct{})
	e.follow = true
	e.bound = -1
	e.lastQuery = ""
	e.lastMiss = false
	e.requestRescan()
}
