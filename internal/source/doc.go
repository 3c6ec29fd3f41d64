// Package source provides the log stream adapters and their supervisor.
//
// # Overview
//
// A Source is "label + ordered lines + completion status": that shape is
// all the engine ever sees. The concrete adapters stream from files
// (following appends via fsnotify, with transparent gzip for rotated logs),
// from stdin, and from a spawned child process.
//
// # Supervision
//
// The Supervisor runs each source in its own goroutine and feeds every line
// into the sink, tagged with the source index and a per-source line number.
// Sources are independent: one stream erroring out records its status and
// leaves the others running. One context cancellation stops them all.
package source
