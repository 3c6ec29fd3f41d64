package source

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
)

// Command spawns a child process and streams its combined stdout and stderr.
// The child is killed when ctx is cancelled.
type Command struct {
	Name    string
	Args    []string
	Display string // label override; useful when Name is just a shell
}

// Label implements Source.
func (c *Command) Label() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Name
}

// Run starts the child and emits its output lines until it exits. A
// non-zero exit becomes the stream's completion error.
func (c *Command) Run(ctx context.Context, emit func(line string)) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)

	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe %s: %w", c.Name, err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.Name, err)
	}

	sc := bufio.NewScanner(out)
	sc.Buffer(make([]byte, 0, scanInitial), scanMax)
	for sc.Scan() {
		emit(sc.Text())
	}
	scanErr := sc.Err()

	if err := cmd.Wait(); err != nil {
		// A child killed by cancellation is a clean end, not a failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	if scanErr != nil {
		return fmt.Errorf("read %s: %w", c.Name, scanErr)
	}
	return nil
}
