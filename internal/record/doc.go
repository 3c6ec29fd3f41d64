// Package record defines the normalized log record model and the line
// decoder that produces it.
//
// # Overview
//
// Every raw line from every source becomes exactly one Record. Lines that
// parse as JSON objects have their "time", "level", and "msg" keys lifted
// into normalized fields; everything else the object carried is deep-copied
// into an owned Value tree. Lines that do not parse are kept verbatim as
// plain-text Records with the LevelNone sentinel, so no input is ever
// dropped.
//
// # Ownership
//
// Decoding uses a fastjson parser pool for speed, but a Record never retains
// parser-backed memory: the Value tree is a full copy and the parser is
// returned to the pool before Decode returns. Records are immutable after
// decode except for Seq, which the store assigns on append.
//
// # Ordering
//
// Records order by (timestamp, source index, line number) via Before. The
// key is total: records without a timestamp sort first, and (source, line)
// breaks every tie deterministically regardless of arrival order.
package record
