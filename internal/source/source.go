package source

import "context"

// Scanner buffer sizing for long log lines.
const (
	scanInitial = 64 * 1024
	scanMax     = 1024 * 1024
)

// Source is one labeled stream of raw log lines. The engine depends only on
// this shape; how a provider produces lines (file tail, pipe, child process)
// stays behind it.
type Source interface {
	// Label names the stream for display.
	Label() string

	// Run streams lines in order, calling emit once per line, until the
	// stream ends or ctx is cancelled. The returned error is the stream's
	// completion status; nil is a clean end.
	Run(ctx context.Context, emit func(line string)) error
}
