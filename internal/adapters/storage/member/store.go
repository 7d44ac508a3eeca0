package member

import (
	"context"
	"errors"

	domain "parley/internal/domain/member"
)

// Store errors
var (
	ErrNotFound       = errors.New("member not found")
	ErrDuplicateEmail = errors.New("a member with that email already exists")
)

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	// Query is a case-insensitive substring match over name/id/email.
	Query  string
	Status string
	// OrgID narrows to one organization's members when > 0.
	OrgID int64
}

// Store persists Member state.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	GetByID(ctx context.Context, id int64) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	Create(ctx context.Context, value domain.Member) (domain.Member, error)
	Update(ctx context.Context, value domain.Member) (domain.Member, error)
	ToggleStatus(ctx context.Context, id int64) (domain.Member, error)
	Delete(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context, values []domain.Member) (bool, error)
}
