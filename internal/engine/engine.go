package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/loupedev/loupe/internal/filter"
	"github.com/loupedev/loupe/internal/record"
	"github.com/loupedev/loupe/internal/store"
)

const (
	// defaultBudget bounds one scan tick so rendering and input stay
	// responsive even against a large backlog.
	defaultBudget = 50 * time.Millisecond

	// chunkSize is how many records are scanned per lock acquisition.
	chunkSize = 256

	// scanYield is the pause between budget-exhausted ticks.
	scanYield = 2 * time.Millisecond
)

// Engine owns the record store, the filter stack, the matching index, and
// all navigation state. Every mutation goes through its methods: ingestion
// goroutines call Append, the view calls the command methods, and exactly
// one Run loop recomputes the matching index.
type Engine struct {
	store  *store.Store
	dec    record.Decoder
	budget time.Duration

	mu      sync.Mutex
	filters filter.Stack
	sorted  bool
	scanPos int64   // next unscanned sequence id
	matches []int64 // sequence ids passing every filter, in index order
	rescan  bool

	follow    bool  // cursor auto-follows the newest match
	bound     int64 // bound identity when follow is false
	selected  map[int64]struct{}
	lastQuery string
	lastMiss  bool

	wake chan struct{}
}

// New returns an engine in follow mode with no filters.
func New(st *store.Store, budget time.Duration) *Engine {
	if budget <= 0 {
		budget = defaultBudget
	}
	return &Engine{
		store:    st,
		budget:   budget,
		follow:   true,
		bound:    -1,
		selected: make(map[int64]struct{}),
		wake:     make(chan struct{}, 1),
	}
}

// Append decodes one raw line, appends the record, and wakes the scan loop.
// Safe to call from any number of ingestion goroutines.
func (e *Engine) Append(source int, line uint64, raw string) int64 {
	seq := e.store.Append(e.dec.Decode(source, line, raw))
	e.notify()
	return seq
}

// Record resolves a sequence id against the store.
func (e *Engine) Record(seq int64) *record.Record {
	return e.store.Get(seq)
}

// Run drives the scan loop until the context is cancelled. At most one tick
// is ever in flight; between full scans the loop parks until an append or a
// rescan request wakes it.
func (e *Engine) Run(ctx context.Context) {
	for {
		e.tick()

		if e.idle() {
			select {
			case <-ctx.Done():
				return
			case <-e.wake:
			}
			continue
		}

		// Backlog remains; yield briefly so rendering and input can run.
		select {
		case <-ctx.Done():
			return
		case <-time.After(scanYield):
		}
	}
}

// notify wakes a parked Run loop. Non-blocking: one pending wakeup is enough.
func (e *Engine) notify() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// idle reports whether every stored record has been scanned and no rescan is
// pending.
func (e *Engine) idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.rescan && e.scanPos >= int64(e.store.Len())
}

// tick runs one time-sliced scan pass.
func (e *Engine) tick() {
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rescan {
		e.scanPos = 0
		e.matches = e.matches[:0]
		e.rescan = false
	}

	// Always complete at least one chunk, then keep going until the budget
	// runs out. The lock is released between chunks so view commands never
	// wait behind a full slice.
	for {
		limit := int64(e.store.Len())
		if e.scanPos >= limit {
			return
		}
		end := e.scanPos + chunkSize
		if end > limit {
			end = limit
		}
		for ; e.scanPos < end; e.scanPos++ {
			rec := e.store.Get(e.scanPos)
			if rec == nil {
				// Store cleared under us; the pending rescan restarts.
				return
			}
			if e.filters.TestAll(rec) {
				e.insert(rec)
			}
		}
		if time.Since(start) >= e.budget {
			return
		}

		e.mu.Unlock()
		e.mu.Lock()
		if e.rescan {
			return
		}
	}
}

// insert places a matching record into the index: appended in arrival order,
// or binary-inserted by sort key in sorted mode.
func (e *Engine) insert(rec *record.Record) {
	if !e.sorted {
		e.matches = append(e.matches, rec.Seq)
		return
	}
	i := sort.Search(len(e.matches), func(i int) bool {
		other := e.store.Get(e.matches[i])
		return other == nil || rec.Before(other)
	})
	e.matches = append(e.matches, 0)
	copy(e.matches[i+1:], e.matches[i:])
	e.matches[i] = rec.Seq
}

// Snapshot is the engine state published to the view after scan progress or
// a command. Matches is a window of the matching index when limit > 0.
type Snapshot struct {
	Total       int     // records in the store
	ScanPos     int64   // next unscanned sequence id
	Scanning    bool    // backlog or rescan outstanding
	MatchTotal  int     // size of the full matching index
	Matches     []int64 // window of the index starting at WindowStart
	WindowStart int
	CursorPos   int   // resolved position in the full index, -1 when no match
	CursorSeq   int64 // identity at CursorPos, -1 when no match
	Follow      bool
	Sorted      bool
	Filters     []string
	Selected    map[int64]struct{}
	LastQuery   string
	SearchMiss  bool
	Status      string
}

// Snapshot returns a copy of the current engine state. A limit > 0 windows
// the matching index around the resolved cursor; limit <= 0 returns it all.
func (e *Engine) Snapshot(limit int) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.resolve()
	snap := Snapshot{
		Total:      e.store.Len(),
		ScanPos:    e.scanPos,
		Scanning:   e.rescan || e.scanPos < int64(e.store.Len()),
		MatchTotal: len(e.matches),
		CursorPos:  pos,
		CursorSeq:  -1,
		Follow:     e.follow,
		Sorted:     e.sorted,
		Filters:    e.filters.Labels(),
		Selected:   make(map[int64]struct{}, len(e.selected)),
		LastQuery:  e.lastQuery,
		SearchMiss: e.lastMiss,
	}
	if pos >= 0 {
		snap.CursorSeq = e.matches[pos]
	}
	for seq := range e.selected {
		snap.Selected[seq] = struct{}{}
	}

	lo, hi := 0, len(e.matches)
	if limit > 0 && hi > limit {
		lo = pos - limit/2
		if lo < 0 {
			lo = 0
		}
		if lo+limit > hi {
			lo = hi - limit
		}
		hi = lo + limit
	}
	snap.Matches = append([]int64(nil), e.matches[lo:hi]...)
	snap.WindowStart = lo

	if snap.Scanning {
		snap.Status = fmt.Sprintf("scanning %d/%d", e.scanPos, e.store.Len())
	}
	return snap
}
