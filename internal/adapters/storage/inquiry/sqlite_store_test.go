package inquiry_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"parley/internal/adapters/storage"
	inquiryStore "parley/internal/adapters/storage/inquiry"
	domain "parley/internal/domain/inquiry"
)

func newTestStore(t *testing.T) *inquiryStore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init: %v", err)
	}
	return inquiryStore.NewSQLiteStore(db)
}

func TestSQLiteStore_InsertAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	older := domain.Inquiry{
		ID:        "inq-1",
		Name:      "Dana Reeve",
		Email:     "dana@example.com",
		Message:   "Do you offer school pricing?",
		CreatedAt: base,
	}
	newer := domain.Inquiry{
		ID:           "inq-2",
		Name:         "Leo Maxwell",
		Email:        "leo@example.com",
		Organization: "Aurora Consulting",
		CreatedAt:    base.Add(2 * time.Hour),
	}
	if err := store.Insert(ctx, older); err != nil {
		t.Fatalf("insert older: %v", err)
	}
	if err := store.Insert(ctx, newer); err != nil {
		t.Fatalf("insert newer: %v", err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "inq-2" || got[1].ID != "inq-1" {
		t.Errorf("order = [%s %s], want newest first", got[0].ID, got[1].ID)
	}
	if got[1].Message != "Do you offer school pricing?" {
		t.Errorf("Message = %q", got[1].Message)
	}
	if !got[0].CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, newer.CreatedAt)
	}
}

func TestSQLiteStore_ListEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
