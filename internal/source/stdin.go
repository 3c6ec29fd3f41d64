package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// Stdin streams lines piped into the process.
type Stdin struct {
	// In overrides os.Stdin, for tests.
	In io.Reader
}

// Label implements Source.
func (s *Stdin) Label() string { return "stdin" }

// Run scans lines until EOF. Cancellation is checked between lines; a
// blocked read ends when the pipe closes.
func (s *Stdin) Run(ctx context.Context, emit func(line string)) error {
	in := s.In
	if in == nil {
		in = os.Stdin
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, scanInitial), scanMax)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		emit(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}
