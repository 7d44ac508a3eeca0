package collection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"parley/internal/adapters/storage"
)

// SQLiteStore implements Store on a single `collection` table.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new collection store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the persisted collection and its revision.
// PRE: key is one of the fixed collection keys
// POST: Returns data and revision, or ErrNotFound if never initialized
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, int64, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT data, revision FROM collection WHERE key = ?", key)

	var data []byte
	var revision int64
	err := row.Scan(&data, &revision)
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("collection %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, 0, err
	}
	return data, revision, nil
}

// Save fully overwrites the collection, bumping the revision counter.
// PRE: data is a JSON-serialized collection
// POST: Collection persisted; returns the new revision
// INVARIANT: with a concrete revision, a stale writer observes ErrConflict
//
//	instead of silently clobbering a concurrent save
func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte, revision int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx,
		"SELECT revision FROM collection WHERE key = ?", key).Scan(&current)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}

	if revision != AnyRevision {
		if exists && revision != current {
			return 0, fmt.Errorf("collection %q: have %d, want %d: %w", key, revision, current, ErrConflict)
		}
		if !exists && revision != 0 {
			return 0, fmt.Errorf("collection %q: have %d, not initialized: %w", key, revision, ErrConflict)
		}
	}

	next := current + 1
	now := time.Now().UTC().Format(time.RFC3339)
	if exists {
		_, err = tx.ExecContext(ctx,
			"UPDATE collection SET data = ?, revision = ?, updated_at = ? WHERE key = ?",
			data, next, now, key)
	} else {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO collection (key, revision, data, updated_at) VALUES (?, ?, ?, ?)",
			key, next, data, now)
	}
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

// NextID advances the keyed id sequence and returns the new value.
// PRE: floor >= 0
// POST: Returns max(stored value, floor) + 1 and persists it
// INVARIANT: the stored value never decreases, so ids freed by deletes
//
//	are not reissued
func (s *SQLiteStore) NextID(ctx context.Context, key string, floor int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx,
		"SELECT value FROM counter WHERE key = ?", key).Scan(&current)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}

	next := current + 1
	if floor >= next {
		next = floor + 1
	}
	if exists {
		_, err = tx.ExecContext(ctx,
			"UPDATE counter SET value = ? WHERE key = ?", next, key)
	} else {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO counter (key, value) VALUES (?, ?)", key, next)
	}
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

// SeedIfEmpty initializes a collection exactly once.
// PRE: data is a JSON-serialized collection
// POST: Collection exists; returns true only when this call created it
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context, key string, data []byte) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO collection (key, revision, data, updated_at) VALUES (?, 1, ?, ?)",
		key, data, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
