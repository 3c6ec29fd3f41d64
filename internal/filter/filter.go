package filter

import (
	"fmt"
	"strings"

	"github.com/loupedev/loupe/internal/query"
	"github.com/loupedev/loupe/internal/record"
)

// Entry is one pushed predicate with a label for the status bar.
type Entry struct {
	Label string
	pred  func(*record.Record) bool
}

// Field builds an inclusion or exclusion predicate on a dotted field path.
// Comparison is case-insensitive against the field's string projection; a
// missing field never equals anything.
func Field(path, value string, exclude bool) Entry {
	op := "="
	if exclude {
		op = "!="
	}
	return Entry{
		Label: fmt.Sprintf("%s%s%s", path, op, value),
		pred: func(rec *record.Record) bool {
			got, ok := rec.Field(path)
			match := ok && strings.EqualFold(got, value)
			if exclude {
				return !match
			}
			return match
		},
	}
}

// Substring builds a case-insensitive predicate over the record's canonical
// text projection.
func Substring(q string) Entry {
	needle := strings.ToLower(q)
	return Entry{
		Label: fmt.Sprintf("~%s", q),
		pred: func(rec *record.Record) bool {
			return strings.Contains(strings.ToLower(rec.Text()), needle)
		},
	}
}

// Expression compiles a query-grammar expression into a predicate. The
// grammar is declarative and evaluation is total, so a pushed expression can
// never fault the scan loop; malformed input is rejected here instead.
func Expression(src string) (Entry, error) {
	expr, err := query.Compile(src)
	if err != nil {
		return Entry{}, fmt.Errorf("compile expression: %w", err)
	}
	return Entry{Label: src, pred: expr.Eval}, nil
}

// Stack is the ordered set of active filters. Slot 0 is the replaceable
// level threshold; pushed entries stack above it and only the last can be
// popped. The zero value is an empty stack that admits every record.
//
// Stack is not self-synchronizing: the engine serializes all access.
type Stack struct {
	minLevel record.Level // 0 means no level filter
	entries  []Entry
}

// SetLevel replaces the level-threshold slot. Zero (or negative) clears the
// slot, readmitting undecodable records. Any real severity keeps the slot
// active, so even a trace threshold still excludes them.
func (s *Stack) SetLevel(min record.Level) {
	if min <= 0 {
		s.minLevel = 0
		return
	}
	s.minLevel = min
}

// Level returns the active threshold, or 0 when the slot is empty.
func (s *Stack) Level() record.Level {
	return s.minLevel
}

// Push appends a predicate above the existing ones.
func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// Pop removes the most recently pushed predicate. It reports whether there
// was one to remove; the level slot is never popped.
func (s *Stack) Pop() bool {
	if len(s.entries) == 0 {
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	return true
}

// Clear drops every pushed predicate and the level threshold.
func (s *Stack) Clear() {
	s.entries = nil
	s.minLevel = 0
}

// Empty reports whether no filter is active.
func (s *Stack) Empty() bool {
	return s.minLevel == 0 && len(s.entries) == 0
}

// TestAll applies every active slot conjunctively, short-circuiting on the
// first failure. An active level threshold always excludes undecodable
// records; with no threshold they pass through.
func (s *Stack) TestAll(rec *record.Record) bool {
	if s.minLevel != 0 {
		if rec.Level < s.minLevel || rec.Level >= record.LevelNone {
			return false
		}
	}
	for _, e := range s.entries {
		if !e.pred(rec) {
			return false
		}
	}
	return true
}

// Labels returns display labels for the active slots, level threshold first.
func (s *Stack) Labels() []string {
	var labels []string
	if s.minLevel != 0 {
		labels = append(labels, "level>="+s.minLevel.String())
	}
	for _, e := range s.entries {
		labels = append(labels, e.Label)
	}
	return labels
}
