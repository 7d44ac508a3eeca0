package inquiry

import (
	"context"

	domain "parley/internal/domain/inquiry"
)

// Store persists inquiry submissions. Each submission is a single row
// insert; there is no update path.
type Store interface {
	Insert(ctx context.Context, value domain.Inquiry) error
	List(ctx context.Context) ([]domain.Inquiry, error)
}
