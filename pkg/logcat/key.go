// Package logcat understands the line format of Android logcat capture
// files: classifying lines, deriving sort keys from the timestamp and
// process/thread prefix, and ordering those keys.
package logcat

import "time"

// Unresolved marks a key whose process ordinal has not been assigned by a
// Registry yet.
const Unresolved = -1

// minTimestamp is the timestamp carried by the default key. Year-less
// timestamps parse into year zero, so this floor sorts at or before every
// parseable line. (The zero time.Time is year one and would sort after them.)
var minTimestamp = time.Date(0, time.January, 1, 0, 0, 0, 0, time.Local)

// Key is the ordering identity of one log line. Month and Day are derived
// from Timestamp at construction and drive fixed-epoch detection; the
// default key leaves them zero so it never reads as fixed-epoch.
// Keys are immutable values and usable as map keys.
type Key struct {
	Timestamp time.Time
	Month     time.Month
	Day       int
	Process   int
	Thread    int

	// ProcessIndex is the first-seen ordinal of Process, assigned by
	// Registry.Resolve. It breaks ties between fixed-epoch keys but is
	// not part of the key's identity.
	ProcessIndex int
}

// NewKey builds the key for a line stamped ts and tagged with the given
// process and thread ids. The ordinal starts unresolved.
func NewKey(ts time.Time, process, thread int) Key {
	return Key{
		Timestamp:    ts,
		Month:        ts.Month(),
		Day:          ts.Day(),
		Process:      process,
		Thread:       thread,
		ProcessIndex: Unresolved,
	}
}

// DefaultKey returns the fallback key for lines that carry no parseable
// prefix. It sorts at or before every dated line and never reads as
// fixed-epoch.
func DefaultKey() Key {
	return Key{Timestamp: minTimestamp, ProcessIndex: Unresolved}
}

// IsFixedEpoch reports whether the key came from the log layout whose
// timestamps collapse to a nominal January 1. Keys from that layout are
// bucketed by process discovery order before time, since the timestamp
// alone cannot separate the per-process streams.
func (k Key) IsFixedEpoch() bool {
	return k.Month == time.January && k.Day == 1
}

// epochBucket returns the first level of the two-level ordering: the
// process ordinal, present only for fixed-epoch keys.
func (k Key) epochBucket() (int, bool) {
	if k.IsFixedEpoch() {
		return k.ProcessIndex, true
	}
	return 0, false
}

// Compare orders keys for output. When both keys sit in an epoch bucket,
// bucket order decides first and timestamp second; any other pairing is
// purely chronological. Thread id never participates in ordering.
func (k Key) Compare(other Key) int {
	a, aok := k.epochBucket()
	b, bok := other.epochBucket()
	if aok && bok && a != b {
		if a < b {
			return -1
		}
		return 1
	}
	return k.Timestamp.Compare(other.Timestamp)
}
