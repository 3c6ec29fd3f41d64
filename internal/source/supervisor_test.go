package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeSource emits fixed lines then ends with a configurable status.
type fakeSource struct {
	label string
	lines []string
	err   error
	block bool // wait for ctx cancellation after emitting
}

func (f *fakeSource) Label() string { return f.label }

func (f *fakeSource) Run(ctx context.Context, emit func(string)) error {
	for _, line := range f.lines {
		emit(line)
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

// recordingSink collects appended lines keyed by source index.
type recordingSink struct {
	mu    sync.Mutex
	lines map[int][]string
	seq   int64
}

func (s *recordingSink) Append(source int, line uint64, raw string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lines == nil {
		s.lines = make(map[int][]string)
	}
	s.lines[source] = append(s.lines[source], raw)
	s.seq++
	return s.seq - 1
}

func TestSupervisor_FeedsAllSources(t *testing.T) {
	sink := &recordingSink{}
	var sv Supervisor

	err := sv.Run(context.Background(), sink, []Source{
		&fakeSource{label: "a", lines: []string{"a1", "a2"}},
		&fakeSource{label: "b", lines: []string{"b1"}},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := sink.lines[0]; len(got) != 2 || got[0] != "a1" {
		t.Fatalf("source 0 lines = %v, want [a1 a2]", got)
	}
	if got := sink.lines[1]; len(got) != 1 || got[0] != "b1" {
		t.Fatalf("source 1 lines = %v, want [b1]", got)
	}

	for i, st := range sv.Statuses() {
		if !st.Done || st.Err != nil {
			t.Fatalf("status[%d] = %+v, want clean completion", i, st)
		}
	}
	if sv.Statuses()[0].Lines != 2 || sv.Statuses()[1].Lines != 1 {
		t.Fatalf("line counts = %+v, want 2 and 1", sv.Statuses())
	}
}

func TestSupervisor_FailedSourceDoesNotAbortSiblings(t *testing.T) {
	boom := errors.New("boom")
	sink := &recordingSink{}
	var sv Supervisor

	err := sv.Run(context.Background(), sink, []Source{
		&fakeSource{label: "bad", err: boom},
		&fakeSource{label: "good", lines: []string{"g1", "g2", "g3"}},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run returned %v, want the source error", err)
	}

	// The healthy sibling delivered everything despite the failure.
	if got := sink.lines[1]; len(got) != 3 {
		t.Fatalf("sibling lines = %v, want all 3", got)
	}

	statuses := sv.Statuses()
	if !errors.Is(statuses[0].Err, boom) {
		t.Fatalf("status[0].Err = %v, want boom", statuses[0].Err)
	}
	if statuses[1].Err != nil {
		t.Fatalf("status[1].Err = %v, want nil", statuses[1].Err)
	}
}

func TestSupervisor_CancellationStopsBlockedSources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{}
	var sv Supervisor

	done := make(chan error, 1)
	go func() {
		done <- sv.Run(ctx, sink, []Source{
			&fakeSource{label: "tail", lines: []string{"t1"}, block: true},
		})
	}()

	// Give the source a moment to start blocking, then cancel.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		// Cancellation is an orderly shutdown, not a source failure.
		if err != nil {
			t.Fatalf("Run returned %v after cancel, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("supervisor did not stop on cancellation")
	}

	st := sv.Statuses()[0]
	if !st.Done || st.Err != nil {
		t.Fatalf("status = %+v, want done without error", st)
	}
}
