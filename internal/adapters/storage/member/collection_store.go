package member

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"parley/internal/adapters/storage/collection"
	domain "parley/internal/domain/member"
)

// CollectionStore implements Store on the entity store's "members"
// collection.
type CollectionStore struct {
	collections collection.Store
}

// NewCollectionStore creates a new member store.
func NewCollectionStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c}
}

func (s *CollectionStore) load(ctx context.Context) ([]domain.Member, int64, error) {
	data, rev, err := s.collections.Load(ctx, collection.KeyMembers)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var values []domain.Member
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, 0, err
	}
	return values, rev, nil
}

func (s *CollectionStore) save(ctx context.Context, values []domain.Member, rev int64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.collections.Save(ctx, collection.KeyMembers, data, rev)
	return err
}

// List retrieves members, optionally narrowed by filter.
func (s *CollectionStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var results []domain.Member
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

// GetByID retrieves a member by id.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	for _, v := range values {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Member{}, ErrNotFound
}

// GetByEmail retrieves a member by email (case-insensitive).
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	for _, v := range values {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return domain.Member{}, ErrNotFound
}

// Create assigns a new identity and appends the record.
// PRE: value has been validated; value.ID is ignored
// POST: Record persisted with an id no other member ever held
// INVARIANT: emails stay unique within the collection
func (s *CollectionStore) Create(ctx context.Context, value domain.Member) (domain.Member, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	for _, v := range values {
		if strings.EqualFold(v.Email, value.Email) {
			return domain.Member{}, ErrDuplicateEmail
		}
	}
	value.ID, err = s.collections.NextID(ctx, collection.KeyMembers, maxID(values))
	if err != nil {
		return domain.Member{}, err
	}
	values = append(values, value)
	if err := s.save(ctx, values, rev); err != nil {
		return domain.Member{}, err
	}
	return value, nil
}

// Update replaces the matching record in place.
// POST: Record persisted, or ErrNotFound when the id has no match
func (s *CollectionStore) Update(ctx context.Context, value domain.Member) (domain.Member, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	for i, v := range values {
		if v.ID == value.ID {
			values[i] = value
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Member{}, err
			}
			return value, nil
		}
	}
	return domain.Member{}, ErrNotFound
}

// ToggleStatus flips the record's lifecycle status and persists.
// Practice history is untouched; only the status field changes.
// POST: Returns the updated record, or ErrNotFound
func (s *CollectionStore) ToggleStatus(ctx context.Context, id int64) (domain.Member, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	for i := range values {
		if values[i].ID == id {
			values[i].ToggleStatus()
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Member{}, err
			}
			return values[i], nil
		}
	}
	return domain.Member{}, ErrNotFound
}

// Delete removes the record. Practice session history belonging to the
// member is not cascaded and stays in its own collection.
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
func (s *CollectionStore) SeedIfEmpty(ctx context.Context, values []domain.Member) (bool, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return false, err
	}
	return s.collections.SeedIfEmpty(ctx, collection.KeyMembers, data)
}

// maxID returns the highest id currently in the collection, used as the
// floor for the persisted id sequence so seeded records are respected.
func maxID(values []domain.Member) int64 {
	var max int64
	for _, v := range values {
		if v.ID > max {
			max = v.ID
		}
	}
	return max
}
