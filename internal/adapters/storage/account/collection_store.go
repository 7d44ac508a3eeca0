package account

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"parley/internal/adapters/storage/collection"
	domain "parley/internal/domain/account"
)

// CollectionStore implements Store on the entity store's "accounts"
// collection.
type CollectionStore struct {
	collections collection.Store
}

// NewCollectionStore creates a new account store.
func NewCollectionStore(c collection.Store) *CollectionStore {
	return &CollectionStore{collections: c}
}

func (s *CollectionStore) load(ctx context.Context) ([]domain.Account, int64, error) {
	data, rev, err := s.collections.Load(ctx, collection.KeyAccounts)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var values []domain.Account
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, 0, err
	}
	return values, rev, nil
}

func (s *CollectionStore) save(ctx context.Context, values []domain.Account, rev int64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.collections.Save(ctx, collection.KeyAccounts, data, rev)
	return err
}

// List retrieves all credential records.
func (s *CollectionStore) List(ctx context.Context) ([]domain.Account, error) {
	values, _, err := s.load(ctx)
	return values, err
}

// GetByID retrieves an account by id.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, v := range values {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Account{}, ErrNotFound
}

// GetByEmail retrieves an account by email (case-insensitive).
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, v := range values {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return domain.Account{}, ErrNotFound
}

// GetByMemberID retrieves the credential record authenticating a member.
// POST: Returns the record or ErrNotFound
func (s *CollectionStore) GetByMemberID(ctx context.Context, memberID int64) (domain.Account, error) {
	values, _, err := s.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, v := range values {
		if v.MemberID == memberID && memberID > 0 {
			return v, nil
		}
	}
	return domain.Account{}, ErrNotFound
}

// Save inserts or replaces the record keyed by id.
// PRE: value has been validated
// POST: Record persisted
// INVARIANT: emails stay unique across credential records
func (s *CollectionStore) Save(ctx context.Context, value domain.Account) error {
	values, rev, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, v := range values {
		if v.ID == value.ID {
			values[i] = value
			return s.save(ctx, values, rev)
		}
		if strings.EqualFold(v.Email, value.Email) {
			return ErrDuplicateEmail
		}
	}
	values = append(values, value)
	return s.save(ctx, values, rev)
}

// Delete removes the record.
// POST: Record absent from the collection, or ErrNotFound
func (s *CollectionStore) Delete(ctx context.Context, id string) error {
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
func (s *CollectionStore) SeedIfEmpty(ctx context.Context, values []domain.Account) (bool, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return false, err
	}
	return s.collections.SeedIfEmpty(ctx, collection.KeyAccounts, data)
}
