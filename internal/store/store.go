package store

import (
	"sync"

	"github.com/loupedev/loupe/internal/record"
)

// Store is the append-only collection of all accepted records and the single
// source of truth for everything downstream. Appends from concurrent
// ingestion goroutines are serialized under one lock; arrival order is
// append order and records are never reordered in place.
type Store struct {
	mu   sync.RWMutex
	recs []*record.Record
	gen  uint64
}

// Append adds a record, assigns its sequence id, and returns it. Sequence
// ids are dense and strictly increasing until the next Clear.
func (s *Store) Append(rec *record.Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Seq = int64(len(s.recs))
	s.recs = append(s.recs, rec)
	return rec.Seq
}

// Get returns the record with the given sequence id, or nil when the id is
// out of range (including ids from before a Clear).
func (s *Store) Get(seq int64) *record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if seq < 0 || seq >= int64(len(s.recs)) {
		return nil
	}
	return s.recs[seq]
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs)
}

// Clear empties the store, resets the sequence counter, and advances the
// generation so holders of old identities can detect the reset.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = nil
	s.gen++
}

// Generation increments on every Clear. Derived state tagged with an older
// generation is stale and must be rebuilt.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}
