package course

import (
	"context"
	"errors"

	domain "parley/internal/domain/course"
)

// ErrNotFound is returned when a requested course id has no match.
var ErrNotFound = errors.New("course not found")

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	// Query is a case-insensitive substring match over title/id.
	Query  string
	Status string
}

// Store persists Course state.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Course, error)
	GetByID(ctx context.Context, id int64) (domain.Course, error)
	Create(ctx context.Context, value domain.Course) (domain.Course, error)
	Update(ctx context.Context, value domain.Course) (domain.Course, error)
	ToggleStatus(ctx context.Context, id int64) (domain.Course, error)
	Delete(ctx context.Context, id int64) error
	SeedIfEmpty(ctx context.Context, values []domain.Course) (bool, error)
}
