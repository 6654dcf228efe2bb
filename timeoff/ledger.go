/*
ledger.go - Pure transforms over a YearLedger

PURPOSE:
  Every change to a year goes through one of three functions here. Each one
  takes a ledger and returns a new ledger; the input is never modified. The
  repository swaps the whole value in one step, so a reader sees either the
  old year or the new one and nothing in between.

INVARIANTS:
  1. Entries stay sorted ascending by Start; equal starts keep insertion order
  2. Failed validation returns the input ledger unchanged
  3. Entry.Days is computed here, once, and never recomputed

SEE ALSO:
  - draft.go: Turning raw form input into a validated entry
  - repository.go: Applies these transforms per year
*/
package timeoff

import (
	"sort"
)

// AddEntry validates draft and, on success, returns l with the new entry
// inserted in start-date order. On any validation error l is returned as is.
func AddEntry(l YearLedger, draft Draft, ids IDGenerator) (YearLedger, Entry, error) {
	entry, err := draft.Build(ids)
	if err != nil {
		return l, Entry{}, err
	}
	return insertEntry(l, entry), entry, nil
}

func insertEntry(l YearLedger, entry Entry) YearLedger {
	entries := make([]Entry, 0, len(l.Entries)+1)
	entries = append(entries, l.Entries...)
	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
	return YearLedger{Allocation: l.Allocation, Entries: entries}
}

// RemoveEntry returns l without the entry id. Unknown ids are a no-op and
// report false.
func RemoveEntry(l YearLedger, id EntryID) (YearLedger, bool) {
	entries := make([]Entry, 0, len(l.Entries))
	removed := false
	for _, e := range l.Entries {
		if e.ID == id {
			removed = true
			continue
		}
		entries = append(entries, e)
	}
	if !removed {
		return l, false
	}
	return YearLedger{Allocation: l.Allocation, Entries: entries}, true
}

// WithAllocation returns l with its allocation replaced.
func WithAllocation(l YearLedger, a Allocation) (YearLedger, error) {
	if err := a.Validate(); err != nil {
		return l, err
	}
	out := l.Clone()
	out.Allocation = a
	return out, nil
}

// IsSorted checks the start-date ordering invariant.
func IsSorted(entries []Entry) bool {
	return sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
}
