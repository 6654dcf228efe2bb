package timeoff

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out entry ids that never repeat within a process.
type IDGenerator interface {
	NewID() EntryID
}

// UUIDs generates random v4 UUIDs.
type UUIDs struct{}

func (UUIDs) NewID() EntryID { return EntryID(uuid.NewString()) }

// SequenceIDs generates "<prefix>-1", "<prefix>-2", ... Safe for concurrent use.
type SequenceIDs struct {
	Prefix string
	next   atomic.Uint64
}

func (s *SequenceIDs) NewID() EntryID {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "entry"
	}
	return EntryID(fmt.Sprintf("%s-%d", prefix, s.next.Add(1)))
}
