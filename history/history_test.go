package history

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "ramcost-history-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "history.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("opening history database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestInsertAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	record := Record{
		TraceID:     "trace-1",
		EntryDigest: "digest-1",
		Cost:        2,
		EntriesJSON: `[{"type":"misc","name":"baseCost","cost":2}]`,
		CreatedAt:   1000,
	}
	if err := db.Insert(record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := db.Get("trace-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record, got nil")
	}
	if got.Cost != 2 || got.EntryDigest != "digest-1" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestGet_MissingRecord(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := db.Get("does-not-exist")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing trace ID, got %+v", got)
	}
}

func TestInsert_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	record := Record{TraceID: "trace-1", EntryDigest: "digest-1", Cost: 2, EntriesJSON: "[]", CreatedAt: 1000}
	if err := db.Insert(record); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := db.Insert(record); err != nil {
		t.Fatalf("second insert should be a no-op, got error: %v", err)
	}
}

func TestByEntryDigest_OrderedOldestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	records := []Record{
		{TraceID: "t3", EntryDigest: "same-script", Cost: 6, EntriesJSON: "[]", CreatedAt: 300},
		{TraceID: "t1", EntryDigest: "same-script", Cost: 2, EntriesJSON: "[]", CreatedAt: 100},
		{TraceID: "t2", EntryDigest: "same-script", Cost: 4, EntriesJSON: "[]", CreatedAt: 200},
		{TraceID: "other", EntryDigest: "different-script", Cost: 9, EntriesJSON: "[]", CreatedAt: 150},
	}
	for _, r := range records {
		if err := db.Insert(r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	history, err := db.ByEntryDigest("same-script")
	if err != nil {
		t.Fatalf("ByEntryDigest failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	for i, want := range []string{"t1", "t2", "t3"} {
		if history[i].TraceID != want {
			t.Errorf("expected oldest-first order, position %d: got %q, want %q", i, history[i].TraceID, want)
		}
	}
}
