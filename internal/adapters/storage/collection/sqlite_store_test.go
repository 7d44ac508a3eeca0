package collection_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"parley/internal/adapters/storage"
	"parley/internal/adapters/storage/collection"
)

// openTestDB creates an in-memory database with the schema applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init: %v", err)
	}
	return db
}

// TestSQLiteStore_LoadMissing verifies an uninitialized collection signals
// ErrNotFound so the caller knows to seed.
func TestSQLiteStore_LoadMissing(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	_, _, err := store.Load(context.Background(), collection.KeyOrganizations)
	if !errors.Is(err, collection.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_SaveLoadRoundTrip verifies a fresh save and reload, with
// the revision counter starting at 1.
func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	rev, err := store.Save(ctx, collection.KeyCourses, []byte(`[{"id":1}]`), 0)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if rev != 1 {
		t.Errorf("revision=%d want 1", rev)
	}

	data, loadedRev, err := store.Load(ctx, collection.KeyCourses)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `[{"id":1}]` || loadedRev != 1 {
		t.Errorf("loaded %q rev=%d", data, loadedRev)
	}
}

// TestSQLiteStore_SaveConflict verifies a stale revision is rejected and
// the stored data is untouched.
func TestSQLiteStore_SaveConflict(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Save(ctx, collection.KeyMembers, []byte(`["a"]`), 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(ctx, collection.KeyMembers, []byte(`["b"]`), 1); err != nil {
		t.Fatalf("second save: %v", err)
	}

	// A writer still holding revision 1 must fail
	_, err := store.Save(ctx, collection.KeyMembers, []byte(`["stale"]`), 1)
	if !errors.Is(err, collection.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	data, rev, err := store.Load(ctx, collection.KeyMembers)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `["b"]` || rev != 2 {
		t.Errorf("stale save clobbered data: %q rev=%d", data, rev)
	}
}

// TestSQLiteStore_SaveAnyRevision verifies AnyRevision opts into
// last-writer-wins explicitly.
func TestSQLiteStore_SaveAnyRevision(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.Save(ctx, collection.KeyGlobalEvents, []byte(`["a"]`), 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	rev, err := store.Save(ctx, collection.KeyGlobalEvents, []byte(`["b"]`), collection.AnyRevision)
	if err != nil {
		t.Fatalf("any-revision save: %v", err)
	}
	if rev != 2 {
		t.Errorf("revision=%d want 2", rev)
	}
}

// TestSQLiteStore_SeedIfEmpty verifies seeding happens exactly once.
func TestSQLiteStore_SeedIfEmpty(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	seeded, err := store.SeedIfEmpty(ctx, collection.KeyAccounts, []byte(`["seed"]`))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("first seed reported false")
	}

	seeded, err = store.SeedIfEmpty(ctx, collection.KeyAccounts, []byte(`["other"]`))
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if seeded {
		t.Fatal("second seed overwrote the collection")
	}

	data, _, err := store.Load(ctx, collection.KeyAccounts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `["seed"]` {
		t.Errorf("data=%q want the original seed", data)
	}
}

// TestSQLiteStore_NextID verifies the id sequence only ever moves forward:
// each call tops the previous one, the floor lifts it past seeded ids, and
// a lower floor never drags it back down.
func TestSQLiteStore_NextID(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	first, err := store.NextID(ctx, collection.KeyMembers, 0)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if first != 1 {
		t.Errorf("first=%d want 1", first)
	}

	lifted, err := store.NextID(ctx, collection.KeyMembers, 4503)
	if err != nil {
		t.Fatalf("next with floor: %v", err)
	}
	if lifted != 4504 {
		t.Errorf("lifted=%d want 4504", lifted)
	}

	// A floor below the stored value, as after deleting the max-id
	// record, must not rewind the sequence
	after, err := store.NextID(ctx, collection.KeyMembers, 2)
	if err != nil {
		t.Fatalf("next after delete: %v", err)
	}
	if after != lifted+1 {
		t.Errorf("after=%d want %d", after, lifted+1)
	}
}

// TestSQLiteStore_NextIDPerKey verifies sequences are independent per key.
func TestSQLiteStore_NextIDPerKey(t *testing.T) {
	store := collection.NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.NextID(ctx, collection.KeyMembers, 10); err != nil {
		t.Fatalf("members next: %v", err)
	}
	got, err := store.NextID(ctx, collection.KeyCourses, 0)
	if err != nil {
		t.Fatalf("courses next: %v", err)
	}
	if got != 1 {
		t.Errorf("courses sequence=%d want 1, independent of members", got)
	}
}
