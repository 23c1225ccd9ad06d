package storage

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuhuuhoang/tetrix/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(100, 4, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(50, 2, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(200, 12, 2); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Lines != 12 || scores[0].Level != 2 {
		t.Errorf("Top entry lines/level = %d/%d, expected 12/2", scores[0].Lines, scores[0].Level)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore((i+1)*100, i, 1)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}

	store.SaveScore(100, 0, 1)
	store.SaveScore(300, 0, 1)
	store.SaveScore(200, 0, 1)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(100, 0, 1)
	store.SaveScore(200, 0, 1)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	e := engine.New(rand.New(rand.NewSource(42)))
	e.Start(nil)
	e.HandleAction(engine.HardDrop)
	snap := e.Snapshot()

	if err := store.SaveSession("default", snap); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	loaded, err := store.LoadSession("default")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSession() returned nil for a saved slot")
	}

	if loaded.Score != snap.Score || loaded.Lines != snap.Lines {
		t.Errorf("Loaded score/lines = %d/%d, expected %d/%d",
			loaded.Score, loaded.Lines, snap.Score, snap.Lines)
	}
	if len(loaded.Grid) != engine.Height || len(loaded.Grid[0]) != engine.Width {
		t.Errorf("Loaded grid is %dx%d", len(loaded.Grid[0]), len(loaded.Grid))
	}
	if loaded.Piece == nil || loaded.Piece.Kind != snap.Piece.Kind {
		t.Error("Loaded session lost the active piece")
	}

	// The restored snapshot should start a working engine.
	restored := engine.New(rand.New(rand.NewSource(7)))
	restored.Start(loaded)
	if !restored.IsRunning() {
		t.Error("Engine restored from a stored session should be running")
	}
}

func TestStoreSessionOverwrite(t *testing.T) {
	store := openTestStore(t)

	e := engine.New(rand.New(rand.NewSource(1)))
	e.Start(nil)
	if err := store.SaveSession("default", e.Snapshot()); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	e.HandleAction(engine.HardDrop)
	second := e.Snapshot()
	if err := store.SaveSession("default", second); err != nil {
		t.Fatalf("SaveSession() overwrite failed: %v", err)
	}

	loaded, err := store.LoadSession("default")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if loaded.Score != second.Score {
		t.Errorf("Slot should hold the latest save: score %d, expected %d", loaded.Score, second.Score)
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session after overwrite, got %d", len(sessions))
	}
}

func TestStoreSessionMissingSlot(t *testing.T) {
	store := openTestStore(t)

	loaded, err := store.LoadSession("nope")
	if err != nil {
		t.Fatalf("LoadSession() on empty slot failed: %v", err)
	}
	if loaded != nil {
		t.Error("LoadSession() on empty slot should return nil")
	}
}

func TestStoreDeleteSession(t *testing.T) {
	store := openTestStore(t)

	e := engine.New(rand.New(rand.NewSource(1)))
	e.Start(nil)
	store.SaveSession("default", e.Snapshot())

	if err := store.DeleteSession("default"); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}

	loaded, _ := store.LoadSession("default")
	if loaded != nil {
		t.Error("Session should be gone after delete")
	}
}
