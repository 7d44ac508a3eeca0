package organization

import (
	"context"
	"encoding/json"
	"errors"

	"parley/internal/adapters/storage/collection"
	domain "parley/internal/domain/organization"
)

// CollectionStore implements Store on the entity store's "organizations"
// collection. Every mutation loads the full collection, applies the change
// and writes the whole collection back under an optimistic revision check.
type CollectionStore struct {
	collections collection.Store
}

// NewCollectionStore creates a new organization store.
func NewCollectionStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c}
}

func (s *CollectionStore) load(ctx context.Context) ([]domain.Organization, int64, error) {
	data, rev, err := s.collections.Load(ctx, collection.KeyOrganizations)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var values []domain.Organization
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, 0, err
	}
	return values, rev, nil
}

func (s *CollectionStore) save(ctx context.Context, values []domain.Organization, rev int64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.collections.Save(ctx, collection.KeyOrganizations, data, rev)
	return err
}

// List retrieves organizations, optionally narrowed by filter.
// POST: Returns matching records in stored order
func (s *CollectionStore) List(ctx context.Context, filter ListFilter) ([]domain.Organization, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var results []domain.Organization
	for _, v := range values {
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

// GetByID retrieves an organization by its id.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByID(ctx context.Context, id int64) (domain.Organization, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Organization{}, err
	}
	for _, v := range values {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Organization{}, ErrNotFound
}

// Create assigns a new identity and appends the record.
// PRE: value has been validated; value.ID is ignored
// POST: Record persisted with an id no other organization ever held
func (s *CollectionStore) Create(ctx context.Context, value domain.Organization) (domain.Organization, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Organization{}, err
	}
	value.ID, err = s.collections.NextID(ctx, collection.KeyOrganizations, maxID(values))
	if err != nil {
		return domain.Organization{}, err
	}
	values = append(values, value)
	if err := s.save(ctx, values, rev); err != nil {
		return domain.Organization{}, err
	}
	return value, nil
}

// Update replaces the matching record in place.
// PRE: value has been validated
// POST: Record persisted, or ErrNotFound when the id has no match
func (s *CollectionStore) Update(ctx context.Context, value domain.Organization) (domain.Organization, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Organization{}, err
	}
	for i, v := range values {
		if v.ID == value.ID {
			values[i] = value
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Organization{}, err
			}
			return value, nil
		}
	}
	return domain.Organization{}, ErrNotFound
}

// ToggleStatus flips the record's lifecycle status and persists.
// POST: Returns the updated record, or ErrNotFound
func (s *CollectionStore) ToggleStatus(ctx context.Context, id int64) (domain.Organization, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Organization{}, err
	}
	for i := range values {
		if values[i].ID == id {
			values[i].ToggleStatus()
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Organization{}, err
			}
			return values[i], nil
		}
	}
	return domain.Organization{}, ErrNotFound
}

// Delete removes the record. It does not cascade to members or events.
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
func (s *CollectionStore) SeedIfEmpty(ctx context.Context, values []domain.Organization) (bool, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return false, err
	}
	return s.collections.SeedIfEmpty(ctx, collection.KeyOrganizations, data)
}

// maxID returns the highest id currently in the collection, used as the
// floor for the persisted id sequence so seeded records are respected.
func maxID(values []domain.Organization) int64 {
	var max int64
	for _, v := range values {
		if v.ID > max {
			max = v.ID
		}
	}
	return max
}
