package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveSnapshot("p1", 2, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	rec, err := store.LoadSnapshot("p1")
	if err != nil || rec == nil {
		t.Fatalf("LoadSnapshot() = %v, %v", rec, err)
	}
}

func TestStoreSnapshots(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.LoadSnapshot("nobody")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for missing snapshot, got %+v", rec)
	}

	if err := store.SaveSnapshot("p1", 1, []byte(`{"coins":1}`)); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	if err := store.SaveSnapshot("p1", 2, []byte(`{"coins":2}`)); err != nil {
		t.Fatalf("SaveSnapshot() overwrite failed: %v", err)
	}

	rec, err = store.LoadSnapshot("p1")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if rec.SchemaVersion != 2 || string(rec.Payload) != `{"coins":2}` {
		t.Errorf("snapshot = v%d %s, want latest", rec.SchemaVersion, rec.Payload)
	}
}

func TestStoreTopResults(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{PlayerID: "a", LevelID: 1, Outcome: OutcomeCompleted, Stars: 2, Moves: 9, Budget: 12, Duration: 20 * time.Second},
		{PlayerID: "b", LevelID: 1, Outcome: OutcomeCompleted, Stars: 3, Moves: 6, Budget: 12, Duration: 15 * time.Second},
		{PlayerID: "c", LevelID: 1, Outcome: OutcomeCompleted, Stars: 3, Moves: 5, Budget: 12, Duration: 30 * time.Second},
		{PlayerID: "a", LevelID: 1, Outcome: OutcomeFailed, Moves: 12, Budget: 12},
		{PlayerID: "a", LevelID: 2, Outcome: OutcomeCompleted, Stars: 1, Moves: 14, Budget: 15},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopResults(1, 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 completed results, got %d", len(top))
	}
	if top[0].PlayerID != "c" || top[1].PlayerID != "b" || top[2].PlayerID != "a" {
		t.Errorf("Results not in expected order: %v", top)
	}
	if top[1].Duration != 15*time.Second {
		t.Errorf("Duration = %v, want 15s", top[1].Duration)
	}

	limited, _ := store.TopResults(1, 1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 result with limit, got %d", len(limited))
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveResult(LevelResult{PlayerID: "p", LevelID: i, Outcome: OutcomeCompleted, Stars: 1, Moves: i, Budget: 10})
	}
	store.SaveResult(LevelResult{PlayerID: "other", LevelID: 1, Outcome: OutcomeCompleted, Moves: 1, Budget: 10})

	recent, err := store.RecentResults("p", 3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].LevelID != 5 || recent[2].LevelID != 3 {
		t.Errorf("RecentResults() = %v", recent)
	}

	if err := store.ClearResults("p"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	recent, _ = store.RecentResults("p", 10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(recent))
	}
	other, _ := store.RecentResults("other", 10)
	if len(other) != 1 {
		t.Error("Other player's results should not be affected")
	}
}

func TestStoreOutbox(t *testing.T) {
	store := openTestStore(t)

	first, err := store.Enqueue("p", "snapshot", []byte("one"))
	if err != nil {
		t.Fatalf("Enqueue() failed: %v", err)
	}
	second, _ := store.Enqueue("p", "achievement", []byte("two"))
	if first == second || len(first) != 36 {
		t.Errorf("expected distinct UUIDs, got %q and %q", first, second)
	}

	pending, err := store.PendingOutbox(10)
	if err != nil {
		t.Fatalf("PendingOutbox() failed: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != first || string(pending[1].Payload) != "two" {
		t.Fatalf("PendingOutbox() = %+v", pending)
	}

	if err := store.MarkFailed(first, "backend down"); err != nil {
		t.Fatalf("MarkFailed() failed: %v", err)
	}
	if err := store.MarkSent(second); err != nil {
		t.Fatalf("MarkSent() failed: %v", err)
	}

	pending, _ = store.PendingOutbox(10)
	if len(pending) != 1 || pending[0].ID != first {
		t.Fatalf("PendingOutbox() after marks = %+v", pending)
	}
	if pending[0].Attempts != 1 || pending[0].LastError != "backend down" {
		t.Errorf("failure not recorded: %+v", pending[0])
	}

	p, s, err := store.OutboxCounts()
	if err != nil {
		t.Fatalf("OutboxCounts() failed: %v", err)
	}
	if p != 1 || s != 1 {
		t.Errorf("OutboxCounts() = %d pending %d sent, want 1/1", p, s)
	}
}
