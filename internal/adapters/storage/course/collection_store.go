package course

import (
	"context"
	"encoding/json"
	"errors"

	"parley/internal/adapters/storage/collection"
	domain "parley/internal/domain/course"
)

// CollectionStore implements Store on the entity store's "courses"
// collection.
type CollectionStore struct {
	collections collection.Store
}

// NewCollectionStore creates a new course store.
func NewCollectionStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c}
}

func (s *CollectionStore) load(ctx context.Context) ([]domain.Course, int64, error) {
	data, rev, err := s.collections.Load(ctx, collection.KeyCourses)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var values []domain.Course
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, 0, err
	}
	return values, rev, nil
}

func (s *CollectionStore) save(ctx context.Context, values []domain.Course, rev int64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.collections.Save(ctx, collection.KeyCourses, data, rev)
	return err
}

// List retrieves courses, optionally narrowed by filter.
func (s *CollectionStore) List(ctx context.Context, filter ListFilter) ([]domain.Course, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var results []domain.Course
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

// GetByID retrieves a course by id.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByID(ctx context.Context, id int64) (domain.Course, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Course{}, err
	}
	for _, v := range values {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Course{}, ErrNotFound
}

// Create assigns a new identity and appends the record.
// PRE: value has been validated; value.ID is ignored
// POST: Record persisted with an id no other course ever held
func (s *CollectionStore) Create(ctx context.Context, value domain.Course) (domain.Course, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Course{}, err
	}
	value.ID, err = s.collections.NextID(ctx, collection.KeyCourses, maxID(values))
	if err != nil {
		return domain.Course{}, err
	}
	values = append(values, value)
	if err := s.save(ctx, values, rev); err != nil {
		return domain.Course{}, err
	}
	return value, nil
}

// Update replaces the matching record in place.
// POST: Record persisted, or ErrNotFound when the id has no match
func (s *CollectionStore) Update(ctx context.Context, value domain.Course) (domain.Course, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Course{}, err
	}
	for i, v := range values {
		if v.ID == value.ID {
			values[i] = value
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Course{}, err
			}
			return value, nil
		}
	}
	return domain.Course{}, ErrNotFound
}

// ToggleStatus flips the record's lifecycle status and persists.
// POST: Returns the updated record, or ErrNotFound
func (s *CollectionStore) ToggleStatus(ctx context.Context, id int64) (domain.Course, error) {
	values, rev, err := s.load(ctx)
	if err != nil {
		return domain.Course{}, err
	}
	for i := range values {
		if values[i].ID == id {
			values[i].ToggleStatus()
			if err := s.save(ctx, values, rev); err != nil {
				return domain.Course{}, err
			}
			return values[i], nil
		}
	}
	return domain.Course{}, ErrNotFound
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
func (s *CollectionStore) SeedIfEmpty(ctx context.Context, values []domain.Course) (bool, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return false, err
	}
	return s.collections.SeedIfEmpty(ctx, collection.KeyCourses, data)
}

// maxID returns the highest id currently in the collection, used as the
// floor for the persisted id sequence so seeded records are respected.
func maxID(values []domain.Course) int64 {
	var max int64
	for _, v := range values {
		if v.ID > max {
			max = v.ID
		}
	}
	return max
}
