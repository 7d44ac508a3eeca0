package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parley/internal/adapters/storage/collection"
	domain "parley/internal/domain/event"
)

// CollectionStore implements Store on one of the entity store's event
// collections. The collection key selects the scope.
type CollectionStore struct {
	collections collection.Store
	key         string
	now         func() time.Time
}

// NewGlobalStore creates a store for platform-wide events.
func NewGlobalStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c, key: collection.KeyGlobalEvents, now: time.Now}
}

// NewOrgStore creates a store for organization-internal events. Records of
// all organizations share the collection; ListFilter.OrgID partitions them.
func NewOrgStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c, key: collection.KeyOrgEvents, now: time.Now}
}

func (s *CollectionStore) load(ctx context.Context) ([]domain.Event, int64, error) {
	data, rev, err := s.collections.Load(ctx, s.key)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var values []domain.Event
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, 0, err
	}
	return values, rev, nil
}

func (s *CollectionStore) save(ctx context.Context, values []domain.Event, rev int64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.collections.Save(ctx, s.key, data, rev)
	return err
}

// List retrieves events, optionally narrowed by filter.
func (s *CollectionStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var results []domain.Event
	for _, v := range values {
		if filter.OrgID > 0 && v.OrgID != filter.OrgID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if !v.Matches(filter.Query) {
			continue
		}
		results = append(results, v)
	}
	return results, nil
}

// GetByID retrieves an event by id.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByID(ctx context.Context, id int64) (domain.Event, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	for _, v := range values {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Event{}, ErrNotFound
}

// Create appends the record with a timestamp-derived id.
// PRE: value has been validated (capacity bound included)
// POST: Record persisted; ids stay unique and monotonic
func (s *CollectionStore) Create(ctx context.Context, value domain.Event) (domain.Event, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	value.ID = timestampID(values, s.now())
	values = append(values, value)
	if err := s.save(ctx, values, rev); err != nil {
		return domain.Event{}, err
	}
	return value, nil
}

// Update replaces the matching record in place.
// PRE: value has been validated (capacity bound included)
// POST: Record persisted, or ErrNotFound when the id has no match
func (s *CollectionStore) Update(ctx context.Context, value domain.Event) (domain.Event, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	for i, v := range values {
		if v.ID == value.ID {
			values[i] = value
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Event{}, err
			}
			return value, nil
		}
	}
	return domain.Event{}, ErrNotFound
}

// Delete removes the record.
// POST: Record absent from the collection, or ErrNotFound
func (s *CollectionStore) Delete(ctx context.Context, id int64) error {
	values, rev, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, v := range values {
		if v.ID == id {
			values = append(values[:i], values[i+1:]...)
			return s.save(ctx, values, rev)
		}
	}
	return ErrNotFound
}

// SeedIfEmpty initializes the collection exactly once.
func (s *CollectionStore) SeedIfEmpty(ctx context.Context, values []domain.Event) (bool, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return false, err
	}
	return s.collections.SeedIfEmpty(ctx, s.key, data)
}

func timestampID(values []domain.Event, now time.Time) int64 {
	id := now.UnixMilli()
	for _, v := range values {
		if v.ID >= id {
			id = v.ID + 1
		}
	}
	return id
}
