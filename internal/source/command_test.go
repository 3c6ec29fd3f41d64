package source

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCommandCombinedOutput(t *testing.T) {
	c := &Command{Name: "sh", Args: []string{"-c", "echo out; echo err 1>&2"}}

	var lines []string
	err := c.Run(context.Background(), func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(lines) != 2 || lines[0] != "out" || lines[1] != "err" {
		t.Fatalf("lines = %v, want [out err]", lines)
	}
}

func TestCommandNonZeroExit(t *testing.T) {
	c := &Command{Name: "sh", Args: []string{"-c", "exit 3"}}

	err := c.Run(context.Background(), func(string) {})
	if err == nil {
		t.Fatal("Run() should report a non-zero exit")
	}
}

func TestCommandCancelledIsCleanEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Command{Name: "sh", Args: []string{"-c", "echo ready; sleep 30"}}

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Run(ctx, func(line string) {
			if line == "ready" {
				cancel()
			}
		})
	}()

	select {
	case err := <-errCh:
		// The supervisor treats context.Canceled as a clean end; the kill
		// signal must not surface as a command failure.
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() after cancel = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestCommandLabel(t *testing.T) {
	c := &Command{Name: "sh", Args: []string{"-c", "true"}}
	if got := c.Label(); got != "sh" {
		t.Fatalf("Label() = %q, want sh", got)
	}

	c.Display = "journalctl -f"
	if got := c.Label(); got != "journalctl -f" {
		t.Fatalf("Label() = %q, want the display override", got)
	}
}
