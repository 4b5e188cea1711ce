package order

import (
	"fmt"
	"slices"
	"time"

	"marketplace/internal/pkg/errs"
)

// HistoryEntry is one immutable line of the status ledger.
type HistoryEntry struct {
	seq       int
	track     Track
	status    string
	actor     Actor
	note      string
	timestamp time.Time
	override  bool
}

// RestoreHistoryEntry rebuilds an entry read from storage.
func RestoreHistoryEntry(
	seq int, track Track, status string, actor Actor, note string, timestamp time.Time, override bool,
) (HistoryEntry, error) {
	if seq < 1 {
		return HistoryEntry{}, errs.NewValueIsOutOfRangeError("seq", seq, 1, "∞")
	}
	if err := ValidateTransition(track, status, status); err != nil {
		return HistoryEntry{}, err
	}
	if err := actor.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{
		seq:       seq,
		track:     track,
		status:    status,
		actor:     actor,
		note:      note,
		timestamp: timestamp.UTC(),
		override:  override,
	}, nil
}

func (e HistoryEntry) Seq() int { return e.seq }
func (e HistoryEntry) Track() Track { return e.track }
func (e HistoryEntry) Status() string { return e.status }
func (e HistoryEntry) Actor() Actor { return e.actor }
func (e HistoryEntry) Note() string { return e.note }
func (e HistoryEntry) Timestamp() time.Time { return e.timestamp }

// IsOverride marks entries written by an administrative correction rather
// than by the normal transition graph.
func (e HistoryEntry) IsOverride() bool { return e.override }

// Ledger is the append-only status history of one order. Entries are ordered
// by seq, which is assigned in call order starting at 1. Timestamps never
// decrease: an entry stamped earlier than its predecessor (clock skew) takes
// the predecessor's timestamp instead of being reordered.
type Ledger struct {
	entries []HistoryEntry
}

// RestoreLedger rebuilds a ledger from stored entries, which must carry the
// contiguous sequence 1..n in order.
func RestoreLedger(entries []HistoryEntry) (Ledger, error) {
	for i, e := range entries {
		if e.seq != i+1 {
			return Ledger{}, errs.NewValueIsInvalidErrorWithCause(
				"history", fmt.Errorf("entry %d has seq %d", i+1, e.seq))
		}
	}
	return Ledger{entries: slices.Clone(entries)}, nil
}

// Append records a transition that has already been validated.
func (l *Ledger) Append(track Track, status string, actor Actor, note string, at time.Time, override bool) HistoryEntry {
	at = at.UTC()
	if n := len(l.entries); n > 0 {
		if prev := l.entries[n-1].timestamp; at.Before(prev) {
			at = prev
		}
	}
	entry := HistoryEntry{
		seq:       len(l.entries) + 1,
		track:     track,
		status:    status,
		actor:     actor,
		note:      note,
		timestamp: at,
		override:  override,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of the ledger, oldest first.
func (l Ledger) Entries() []HistoryEntry {
	return slices.Clone(l.entries)
}

func (l Ledger) Len() int {
	return len(l.entries)
}

// Last returns the newest entry on the given track.
func (l Ledger) Last(track Track) (HistoryEntry, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].track == track {
			return l.entries[i], true
		}
	}
	return HistoryEntry{}, false
}
