// Package engine implements the streaming scan/index loop and the
// navigation state of the viewer.
//
// # Overview
//
// The engine is the single owner of everything derived from the record
// store: the matching index, the scan cursor, the selection set, and the
// view cursor. Ingestion goroutines only ever call Append; the view only
// ever calls command methods; exactly one Run loop recomputes the index.
//
// # Architecture
//
//	Ingestion (N goroutines):      Scan loop (1 goroutine):       View:
//	┌──────────────┐              ┌──────────────────────┐
//	│ decode line  │              │ tick: scan new recs, │
//	│ store.Append │──── wake ───→│ filter, index        │←── commands
//	└──────────────┘              │ park when caught up  │──→ Snapshot()
//	                              └──────────────────────┘
//
// # Scan model
//
// The matching index is recomputed incrementally: scanPos marks the next
// unscanned sequence id, and each tick advances it in chunks under a time
// budget before yielding. Matching records append in arrival order, or
// binary-insert by the (time, source, line) sort key in sorted mode.
//
// Any filter or sort-mode change requests a full rescan: scanPos returns to
// zero and the index empties. Predicates are not monotonic, so incremental
// retraction would be incorrect; a bounded rescan is the simpler and safe
// recovery. Bound cursors and the selection set are identity-based and ride
// through rescans untouched.
//
// # Cursor resolution
//
// The cursor is either follow mode (tracks the newest match) or bound to a
// record identity. A bound identity that is filtered out, or not yet
// rescanned, resolves to the nearest subsequent match in the index order,
// then to the last match. An empty index resolves to no position, which is
// a valid displayable state.
//
// # Locking
//
// One mutex guards all engine state. Ticks release it between chunks, so a
// view command waits at most one chunk, not one full time slice.
package engine
