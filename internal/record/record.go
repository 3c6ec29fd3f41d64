package record

import (
	"strconv"
	"strings"
	"time"
)

// Level is a numeric log severity on the pino scale (10 trace .. 60 fatal).
type Level int

const (
	LevelTrace Level = 10
	LevelDebug Level = 20
	LevelInfo  Level = 30
	LevelWarn  Level = 40
	LevelError Level = 50
	LevelFatal Level = 60

	// LevelNone is the sentinel for lines that could not be decoded as
	// structured entries. It is greater than every real severity.
	LevelNone Level = 100
)

// String returns the conventional lowercase name for the level, or its
// numeric form for values off the standard scale.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	case LevelNone:
		return "none"
	}
	return strconv.Itoa(int(l))
}

// ParseLevel maps a level name or numeric string to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
		return Level(n), true
	}
	return 0, false
}

// Record is one decoded log line. Records are immutable after decode except
// for Seq, which the store assigns on append.
type Record struct {
	Seq     int64     // store-assigned, monotonic across all sources
	Source  int       // index of the originating stream
	Line    uint64    // 1-based line number within that stream
	Time    time.Time // zero when the line carried no usable timestamp
	Level   Level
	Message string
	Fields  *Value // leftover structured keys; nil for plain-text lines

	text string // canonical projection, built at decode
}

// Text returns the canonical string projection of the record: timestamp,
// level, message, then flattened fields. Substring filters and search match
// against this.
func (r *Record) Text() string {
	return r.text
}

// sortMillis is the timestamp component of the sort key. Records without a
// timestamp sort before all timestamped records.
func (r *Record) sortMillis() int64 {
	if r.Time.IsZero() {
		return 0
	}
	return r.Time.UnixMilli()
}

// Before reports whether r precedes o in the deterministic cross-source
// order: timestamp, then source index, then line number. The ordering is
// total: no two records from one source share a line number.
func (r *Record) Before(o *Record) bool {
	rm, om := r.sortMillis(), o.sortMillis()
	if rm != om {
		return rm < om
	}
	if r.Source != o.Source {
		return r.Source < o.Source
	}
	return r.Line < o.Line
}

// Field resolves a dotted path against the record. The names "level", "msg",
// "message", and "time" address the normalized fields; anything else is
// looked up in the field tree. The second result is false when the path does
// not resolve.
func (r *Record) Field(path string) (string, bool) {
	switch path {
	case "level":
		return r.Level.String(), true
	case "msg", "message":
		return r.Message, true
	case "time":
		if r.Time.IsZero() {
			return "", false
		}
		return r.Time.Format(time.RFC3339), true
	}
	if r.Fields == nil {
		return "", false
	}
	v := r.Fields.Lookup(path)
	if v == nil {
		return "", false
	}
	return v.Scalar(), true
}
