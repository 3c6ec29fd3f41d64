package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzip"
)

// followPoll is a fallback re-read cadence for filesystems where change
// notifications are unreliable.
const followPoll = time.Second

// File streams a log file. Plain files are read to the end and then
// followed for appended lines; gzip files (rotated logs) are decompressed
// and read to EOF without following.
type File struct {
	Path   string
	Follow bool
}

// Label returns the file's base name.
func (f *File) Label() string {
	return filepath.Base(f.Path)
}

// Run reads the file and, for plain files with Follow set, keeps emitting
// appended lines until ctx is cancelled or the file goes away.
func (f *File) Run(ctx context.Context, emit func(line string)) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer file.Close()

	if strings.HasSuffix(f.Path, ".gz") {
		return f.readGzip(ctx, file, emit)
	}

	lr := &lineReader{r: bufio.NewReaderSize(file, scanInitial)}
	if err := lr.drain(ctx, emit); err != nil {
		return err
	}
	if !f.Follow {
		lr.flush(emit)
		return nil
	}
	return f.follow(ctx, lr, emit)
}

func (f *File) readGzip(ctx context.Context, file *os.File, emit func(string)) error {
	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("gzip %s: %w", f.Path, err)
	}
	defer gz.Close()

	sc := bufio.NewScanner(gz)
	sc.Buffer(make([]byte, 0, scanInitial), scanMax)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		emit(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}
	return nil
}

// follow waits for appends and drains them as they arrive. Change events
// come from fsnotify, with a slow poll as a safety net.
func (f *File) follow(ctx context.Context, lr *lineReader, emit func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", f.Path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.Path); err != nil {
		return fmt.Errorf("watch %s: %w", f.Path, err)
	}

	ticker := time.NewTicker(followPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				// File rotated away; emit what is buffered and end cleanly.
				lr.flush(emit)
				return nil
			}
			if ev.Has(fsnotify.Write) {
				if err := lr.drain(ctx, emit); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", f.Path, err)

		case <-ticker.C:
			if err := lr.drain(ctx, emit); err != nil {
				return err
			}
		}
	}
}

// lineReader reads newline-delimited lines, holding back a trailing partial
// line until its newline arrives.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
}

// drain emits every complete line currently available. It stops (without
// error) at EOF, keeping any partial tail for the next call.
func (lr *lineReader) drain(ctx context.Context, emit func(string)) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		chunk, err := lr.r.ReadString('\n')
		if err == nil {
			// Strip CRLF the same way bufio.Scanner does, so a followed
			// file decodes identically to a piped one. The \r can sit at
			// the end of a held partial when EOF split the line there.
			line := string(lr.partial) + strings.TrimSuffix(chunk, "\n")
			line = strings.TrimSuffix(line, "\r")
			lr.partial = lr.partial[:0]
			emit(line)
			continue
		}
		lr.partial = append(lr.partial, chunk...)
		if err == io.EOF {
			return nil
		}
		return err
	}
}

// flush emits a held partial line, if any, as a final line.
func (lr *lineReader) flush(emit func(string)) {
	if len(lr.partial) > 0 {
		emit(string(lr.partial))
		lr.partial = lr.partial[:0]
	}
}
