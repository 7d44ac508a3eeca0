package practice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parley/internal/adapters/storage/collection"
	domain "parley/internal/domain/practice"
)

// CollectionStore implements Store on the entity store's
// "practice_sessions" collection.
type CollectionStore struct {
	collections collection.Store
	now         func() time.Time
}

// NewCollectionStore creates a new practice session store.
func NewCollectionStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c, now: time.Now}
}

func (s *CollectionStore) load(ctx context.Context) ([]domain.Session, int64, error) {
	data, rev, err := s.collections.Load(ctx, collection.KeyPracticeSessions)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var values []domain.Session
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, 0, err
	}
	return values, rev, nil
}

// List retrieves sessions, optionally narrowed by filter.
func (s *CollectionStore) List(ctx context.Context, filter ListFilter) ([]domain.Session, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var results []domain.Session
	for _, v := range values {
		if filter.MemberID > 0 && v.MemberID != filter.MemberID {
			continue
		}
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		results = append(results, v)
	}
	return results, nil
}

// GetByID retrieves a session by id.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByID(ctx context.Context, id int64) (domain.Session, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, v := range values {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Session{}, ErrNotFound
}

// Append adds one immutable session record.
// PRE: value has been validated; the member reference has been checked by
//
//	the caller against the member store
//
// POST: Record persisted with a timestamp-derived id
// INVARIANT: existing records are never modified or removed
func (s *CollectionStore) Append(ctx context.Context, value domain.Session) (domain.Session, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	value.ID = timestampID(values, s.now())
	values = append(values, value)
	data, err := json.Marshal(values)
	if err != nil {
		return domain.Session{}, err
	}
	if _, err := s.collections.Save(ctx, collection.KeyPracticeSessions, data, rev); err != nil {
		return domain.Session{}, err
	}
	return value, nil
}

// SeedIfEmpty initializes the collection exactly once.
func (s *CollectionStore) SeedIfEmpty(ctx context.Context, values []domain.Session) (bool, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return false, err
	}
	return s.collections.SeedIfEmpty(ctx, collection.KeyPracticeSessions, data)
}

// timestampID derives an id from the wall clock, bumped past the current
// maximum so ids stay unique and monotonic even within one millisecond.
func timestampID(values []domain.Session, now time.Time) int64 {
	id := now.UnixMilli()
	for _, v := range values {
		if v.ID >= id {
			id = v.ID + 1
		}
	}
	return id
}
