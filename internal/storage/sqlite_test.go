package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{GameID: "snake", Score: 40, Length: 5}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("snake")
	if err != nil || high != 40 {
		t.Errorf("HighScore() = %d, %v; expected 40", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{GameID: "snake", Score: 100, Length: 11, Ticks: 400},
		{GameID: "snake", Score: 50, Length: 6, Ticks: 200},
		{GameID: "snake", Score: 200, Length: 21, Ticks: 900},
		{GameID: "snake_classic", Score: 500, Length: 51, Ticks: 3000},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%+v) failed: %v", r, err)
		}
	}

	runs, err := store.TopRuns("snake", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, score := range expected {
		if runs[i].Score != score {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, score)
		}
	}
	if runs[0].Length != 21 || runs[0].Ticks != 900 {
		t.Errorf("run details not stored: %+v", runs[0])
	}

	classic, err := store.TopRuns("snake_classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(classic) != 1 || classic[0].Score != 500 {
		t.Errorf("variants should be kept apart, got %+v", classic)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveRun(Run{GameID: "snake", Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("snake", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 || runs[0].Score != 140 {
		t.Errorf("TopRuns(5) = %d runs starting at %d", len(runs), runs[0].Score)
	}

	runs, err = store.TopRuns("snake", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("default limit returned %d runs, expected 10", len(runs))
	}
}

func TestStoreTiesKeepFirstRun(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveRun(Run{GameID: "snake", Score: 30, Length: 4})
	store.SaveRun(Run{GameID: "snake", Score: 30, Length: 9})

	runs, err := store.TopRuns("snake", 1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if runs[0].ID != first {
		t.Errorf("tie should go to the earlier run, got ID %d", runs[0].ID)
	}
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{GameID: "snake", Score: -10}); err == nil {
		t.Error("negative score should be rejected")
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for empty history, expected 0", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "snake", Score: 10})
	store.SaveRun(Run{GameID: "snake_classic", Score: 20})

	if err := store.ClearRuns("snake"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("snake", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	other, _ := store.TopRuns("snake_classic", 10)
	if len(other) != 1 {
		t.Error("ClearRuns should not touch other variants")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{GameID: "snake", Score: 10, Length: 2})
	store.SaveRun(Run{GameID: "snake", Score: 30, Length: 4})

	stats, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 30 || stats.LongestLen != 4 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.snakefun/scores.db")
	if err != nil {
		t.Fatalf("ExpandHome failed: %v", err)
	}
	if got != filepath.Join(home, ".snakefun", "scores.db") {
		t.Errorf("ExpandHome = %q", got)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths should pass through, got %q", got)
	}
	if got, _ := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user paths are not expanded, got %q", got)
	}
}
