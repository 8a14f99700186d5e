// Package kv provides the key-value media the persisted store writes to.
// Every medium stores opaque byte values under string keys together with a
// revision counter, so callers can do optimistic read-modify-write cycles.
// No business logic lives here, only storage and revision bookkeeping.
package kv

import (
	"context"
	"errors"
)

// AnyRevision passed as the expected revision makes Put unconditional.
const AnyRevision int64 = -1

// ErrConflict is returned by Put when the stored revision does not match the
// caller's expectation, i.e. someone else wrote the key in between.
var ErrConflict = errors.New("kv: revision conflict")

// Entry is a stored value and the revision it was written at.
// Revisions start at 1 and grow by one with every write of the key.
type Entry struct {
	Value    []byte
	Revision int64
}

// Medium is the persistence contract shared by every backend.
type Medium interface {
	// Get returns the entry stored under key. found is false when the key has
	// never been written; that is not an error.
	Get(ctx context.Context, key string) (entry Entry, found bool, err error)

	// Put replaces the value under key and returns the new revision.
	//
	// expect selects the write condition:
	//   AnyRevision  always write
	//   0            only if key does not exist yet
	//   n > 0        only if the stored revision is n
	// A failed condition returns ErrConflict.
	Put(ctx context.Context, key string, value []byte, expect int64) (int64, error)
}
