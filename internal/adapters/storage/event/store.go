package event

import (
	"context"
	"errors"

	domain "parley/internal/domain/event"
)

// ErrNotFound is returned when a requested event id has no match.
var ErrNotFound = errors.New("event not found")

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	// Query is a case-insensitive substring match over title/id.
	Query  string
	Status string
	// OrgID narrows an organization-scoped store to one organization's
	// internal events when > 0. Ignored by the global store.
	OrgID int64
}

// Store persists Event state for one scope (global or organization-internal).
// The two scopes share this shape but live in separate collections.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	GetByID(ctx context.Context, id int64) (domain.Event, error)
	Create(ctx context.Context, value domain.Event) (domain.Event, error)
	Update(ctx context.Context, value domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context, values []domain.Event) (bool, error)
}
