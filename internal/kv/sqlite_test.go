package kv

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "checklist-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteSetGetDeleteAndKeys(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "profiles"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "profiles", `[]`); err != nil {
		t.Fatalf("set profiles: %v", err)
	}
	if err := store.Set(ctx, "activeProfile", `"default"`); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := store.Set(ctx, "profiles", `[{"id":"default"}]`); err != nil {
		t.Fatalf("overwrite profiles: %v", err)
	}

	got, ok, err := store.Get(ctx, "profiles")
	if err != nil || !ok {
		t.Fatalf("get profiles: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"default"}]` {
		t.Fatalf("unexpected value: %q", got)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "activeProfile" || keys[1] != "profiles" {
		t.Fatalf("unexpected keys: %#v", keys)
	}

	rev, err := store.Revision(ctx)
	if err != nil {
		t.Fatalf("revision: %v", err)
	}
	if rev != 3 {
		t.Fatalf("expected revision 3 after three writes, got %d", rev)
	}

	if err := store.Delete(ctx, "profiles"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "profiles"); ok {
		t.Fatal("expected key removed")
	}
}

func TestSQLiteChangesOnlyReportsForeignOrigins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	defer first.Close()
	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	defer second.Close()

	ctx := context.Background()
	if err := first.Set(ctx, "styleSettings", `{"mainBgColor":"#111111"}`); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := second.Set(ctx, "activeProfile", `"work"`); err != nil {
		t.Fatalf("second set: %v", err)
	}

	seenByFirst, err := first.Changes(ctx, 0)
	if err != nil {
		t.Fatalf("first changes: %v", err)
	}
	if len(seenByFirst) != 1 || seenByFirst[0].Key != "activeProfile" || seenByFirst[0].Origin != second.Origin() {
		t.Fatalf("unexpected changes for first: %#v", seenByFirst)
	}

	seenBySecond, err := second.Changes(ctx, 0)
	if err != nil {
		t.Fatalf("second changes: %v", err)
	}
	if len(seenBySecond) != 1 || seenBySecond[0].Key != "styleSettings" {
		t.Fatalf("unexpected changes for second: %#v", seenBySecond)
	}

	later, err := second.Changes(ctx, seenBySecond[0].Revision)
	if err != nil {
		t.Fatalf("changes since: %v", err)
	}
	if len(later) != 0 {
		t.Fatalf("expected no changes after last revision, got %#v", later)
	}
}

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Set(t.Context(), "tasks", `[]`); err != nil {
		t.Fatalf("set after roundtrip failed: %v", err)
	}
	got, ok, err := store.Get(t.Context(), "tasks")
	if err != nil || !ok || got != `[]` {
		t.Fatalf("unexpected value after roundtrip: %q ok=%v err=%v", got, ok, err)
	}
}

func TestNewSQLiteStoreRejectsNilDB(t *testing.T) {
	if _, err := NewSQLiteStore(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}
