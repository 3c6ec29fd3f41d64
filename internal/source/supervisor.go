package source

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Sink accepts raw lines for decoding and storage. The engine satisfies it.
type Sink interface {
	Append(source int, line uint64, raw string) int64
}

// Status is one source's progress and completion state.
type Status struct {
	Label string
	Lines uint64
	Done  bool
	Err   error
}

// Supervisor runs one ingestion goroutine per source and tracks per-source
// status. A failed source records its error and does not abort its
// siblings; cancelling ctx stops everything.
type Supervisor struct {
	mu       sync.Mutex
	statuses []Status
}

// Run ingests every source into the sink and blocks until all of them end.
// It returns the first source error, if any. Source indexes passed to the
// sink match positions in sources and in Statuses.
func (sv *Supervisor) Run(ctx context.Context, sink Sink, sources []Source) error {
	sv.mu.Lock()
	sv.statuses = make([]Status, len(sources))
	for i, src := range sources {
		sv.statuses[i].Label = src.Label()
	}
	sv.mu.Unlock()

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			var line uint64
			err := src.Run(ctx, func(raw string) {
				line++
				sink.Append(i, line, raw)
				sv.count(i)
			})
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			sv.finish(i, err)
			if err != nil {
				log.Printf("source %s ended: %v", src.Label(), err)
			}
			return err
		})
	}
	return g.Wait()
}

// Statuses returns a copy of every source's current status.
func (sv *Supervisor) Statuses() []Status {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	out := make([]Status, len(sv.statuses))
	copy(out, sv.statuses)
	return out
}

func (sv *Supervisor) count(i int) {
	sv.mu.Lock()
	sv.statuses[i].Lines++
	sv.mu.Unlock()
}

func (sv *Supervisor) finish(i int, err error) {
	sv.mu.Lock()
	sv.statuses[i].Done = true
	sv.statuses[i].Err = err
	sv.mu.Unlock()
}
