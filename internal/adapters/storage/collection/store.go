package collection

import (
	"context"
	"errors"
)

// Fixed collection keys. One key per partition of the entity store.
const (
	KeyOrganizations    = "organizations"
	KeyMembers          = "members"
	KeyAccounts         = "accounts"
	KeyPracticeSessions = "practice_sessions"
	KeyOrgEvents        = "org_events"
	KeyGlobalEvents     = "global_events"
	KeyCourses          = "courses"
)

// AnyRevision disables the optimistic version check on Save, giving the
// plain last-writer-wins overwrite.
const AnyRevision int64 = -1

// Store errors
var (
	// ErrNotFound means the collection has never been initialized; the
	// caller must seed it.
	ErrNotFound = errors.New("collection not found")
	// ErrConflict means the revision passed to Save is stale: another
	// writer overwrote the collection in between.
	ErrConflict = errors.New("collection revision conflict")
)

// Store is the entity store: durable, typed-by-convention JSON collections
// keyed by fixed string keys. Each Save fully overwrites the collection.
type Store interface {
	// Load returns the persisted collection and its current revision.
	Load(ctx context.Context, key string) ([]byte, int64, error)
	// Save overwrites the collection. revision must match the currently
	// stored revision (0 for a collection that does not exist yet), or be
	// AnyRevision to skip the check. Returns the new revision.
	Save(ctx context.Context, key string, data []byte, revision int64) (int64, error)
	// SeedIfEmpty initializes a collection exactly once. Returns true if
	// the seed data was written, false if the collection already existed.
	SeedIfEmpty(ctx context.Context, key string, data []byte) (bool, error)
	// NextID advances the keyed id sequence and returns the new value.
	// The sequence never goes backwards: the result is greater than
	// every value NextID has returned for the key and at least floor+1.
	// floor lets a caller fold in ids that entered the collection
	// outside the sequence, such as seed data.
	NextID(ctx context.Context, key string, floor int64) (int64, error)
}
