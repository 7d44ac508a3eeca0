package inquiry

import (
	"context"
	"time"

	"parley/internal/adapters/storage"
	domain "parley/internal/domain/inquiry"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new inquiry store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists one inquiry row.
// PRE: value has been validated
// POST: Row is inserted; errors surface to the caller for mapping
func (s *SQLiteStore) Insert(ctx context.Context, value domain.Inquiry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO inquiry (id, name, email, phone, organization, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		value.ID,
		value.Name,
		value.Email,
		value.Phone,
		value.Organization,
		value.Message,
		value.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// List retrieves all inquiries, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, phone, organization, message, created_at FROM inquiry ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Inquiry
	for rows.Next() {
		var entity domain.Inquiry
		var createdAt string
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Email,
			&entity.Phone,
			&entity.Organization,
			&entity.Message,
			&createdAt,
		); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entity.CreatedAt = t
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
