package account

import (
	"context"
	"errors"

	domain "parley/internal/domain/account"
)

// Store errors
var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("an account with that email already exists")
)

// Store persists credential records.
type Store interface {
	List(ctx context.Context) ([]domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByMemberID(ctx context.Context, memberID int64) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Delete(ctx context.Context, id string) error
	SeedIfEmpty(ctx context.Context, values []domain.Account) (bool, error)
}
