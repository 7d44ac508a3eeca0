package organization

import (
	"context"
	"errors"

	domain "parley/internal/domain/organization"
)

// ErrNotFound is returned when a requested organization id has no match.
var ErrNotFound = errors.New("organization not found")

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	// Query is a case-insensitive substring match over name/id/domain.
	Query  string
	Status string
}

// Store persists Organization state.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Organization, error)
	GetByID(ctx context.Context, id int64) (domain.Organization, error)
	Create(ctx context.Context, value domain.Organization) (domain.Organization, error)
	Update(ctx context.Context, value domain.Organization) (domain.Organization, error)
	ToggleStatus(ctx context.Context, id int64) (domain.Organization, error)
	Delete(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context, values []domain.Organization) (bool, error)
}
