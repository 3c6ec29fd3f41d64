package engine

import (
	"sort"
	"strings"
)

// resolve maps the cursor onto the current matching index. Follow mode pins
// the newest match; a bound identity resolves to its own position, falling
// back to the nearest subsequent match and then to the last one. Returns -1
// when nothing matches. Caller holds e.mu.
func (e *Engine) resolve() int {
	if len(e.matches) == 0 {
		return -1
	}
	if e.follow || e.bound < 0 {
		return len(e.matches) - 1
	}
	return e.locate(e.bound)
}

// locate finds seq in the index, or the position of the nearest match after
// it in the index order, or the last position. Caller holds e.mu.
func (e *Engine) locate(seq int64) int {
	n := len(e.matches)
	var i int
	if !e.sorted {
		// Append mode keeps the index ascending by sequence id.
		i = sort.Search(n, func(i int) bool { return e.matches[i] >= seq })
	} else {
		target := e.store.Get(seq)
		if target == nil {
			return n - 1
		}
		i = sort.Search(n, func(i int) bool {
			rec := e.store.Get(e.matches[i])
			return rec == nil || !rec.Before(target)
		})
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Move steps the cursor by delta positions, clamping at the ends. Any move
// leaves follow mode and binds the cursor to the record it lands on.
func (e *Engine) Move(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.resolve()
	if pos < 0 {
		return
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(e.matches) {
		pos = len(e.matches) - 1
	}
	e.follow = false
	e.bound = e.matches[pos]
	e.lastMiss = false
}

// JumpFirst binds the cursor to the first match.
func (e *Engine) JumpFirst() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.matches) == 0 {
		return
	}
	e.follow = false
	e.bound = e.matches[0]
	e.lastMiss = false
}

// JumpLast binds the cursor to the current last match without entering
// follow mode.
func (e *Engine) JumpLast() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.matches) == 0 {
		return
	}
	e.follow = false
	e.bound = e.matches[len(e.matches)-1]
	e.lastMiss = false
}

// JumpTail switches the cursor to follow mode: it tracks the newest match
// as new records arrive.
func (e *Engine) JumpTail() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.follow = true
	e.bound = -1
	e.lastMiss = false
}

// Bind pins the cursor to a specific record identity.
func (e *Engine) Bind(seq int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.follow = false
	e.bound = seq
}

// ToggleSelect flips selection membership for the record under the cursor.
// Selection is identity-based and survives rescans and filter changes.
func (e *Engine) ToggleSelect() {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.resolve()
	if pos < 0 {
		return
	}
	seq := e.matches[pos]
	if _, ok := e.selected[seq]; ok {
		delete(e.selected, seq)
	} else {
		e.selected[seq] = struct{}{}
	}
}

// JumpSelected moves to the nearest selected record after (or before, when
// backward) the cursor within the matching index. Reports whether one was
// found; the cursor is unchanged otherwise.
func (e *Engine) JumpSelected(backward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.seek(backward, func(seq int64) bool {
		_, ok := e.selected[seq]
		return ok
	})
}

// Search scans the matching index directionally from the cursor for a record
// whose text contains the query, binds the cursor on a hit, and remembers
// the query for SearchNext. A miss leaves the cursor in place and raises the
// not-found status.
func (e *Engine) Search(q string, backward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastQuery = q
	return e.search(q, backward)
}

// SearchNext repeats the remembered query. Reports false when there is no
// remembered query or no further hit.
func (e *Engine) SearchNext(backward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastQuery == "" {
		return false
	}
	return e.search(e.lastQuery, backward)
}

func (e *Engine) search(q string, backward bool) bool {
	needle := strings.ToLower(q)
	hit := e.seek(backward, func(seq int64) bool {
		rec := e.store.Get(seq)
		return rec != nil && strings.Contains(strings.ToLower(rec.Text()), needle)
	})
	e.lastMiss = !hit
	return hit
}

// seek walks the index outward from the cursor (exclusive) in one direction
// and binds the cursor to the first position satisfying want. Caller holds
// e.mu.
func (e *Engine) seek(backward bool, want func(seq int64) bool) bool {
	n := len(e.matches)
	if n == 0 {
		return false
	}

	pos := e.resolve()
	step := 1
	if backward {
		step = -1
	}
	if pos < 0 {
		// No current match position: enter from the relevant end.
		if backward {
			pos = n
		} else {
			pos = -1
		}
	}
	for i := pos + step; i >= 0 && i < n; i += step {
		if want(e.matches[i]) {
			e.follow = false
			e.bound = e.matches[i]
			return true
		}
	}
	return false
}
