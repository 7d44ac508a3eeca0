package practice

import (
	"context"
	"errors"

	domain "parley/internal/domain/practice"
)

// ErrNotFound is returned when a requested session id has no match.
var ErrNotFound = errors.New("practice session not found")

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	// MemberID narrows to one member's history when > 0.
	MemberID int64
	Type     string
}

// Store persists the append-only practice session history. Records are
// immutable once appended; there is no update operation.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Session, error)
	GetByID(ctx context.Context, id int64) (domain.Session, error)
	Append(ctx context.Context, value domain.Session) (domain.Session, error)
	SeedIfEmpty(ctx context.Context, values []domain.Session) (bool, error)
}
