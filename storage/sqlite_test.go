package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "scores.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTemp(t)

	saves := []struct {
		game    string
		score   int
		level   int
		outcome Outcome
	}{
		{GameID, 100, 1, OutcomeGameOver},
		{GameID, 1250, 5, OutcomeVictory},
		{GameID, 400, 3, OutcomeGameOver},
		{GameID, 400, 2, OutcomeGameOver},
		{"other", 9999, 1, OutcomeVictory},
	}
	for _, s := range saves {
		if _, err := store.SaveRun(s.game, s.score, s.level, s.outcome); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(GameID, 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].Score != 1250 || runs[0].Outcome != OutcomeVictory || runs[0].Level != 5 {
		t.Fatalf("best run %+v", runs[0])
	}
	if runs[1].Level != 3 || runs[2].Level != 2 {
		t.Fatalf("tie order: %+v, %+v", runs[1], runs[2])
	}
	if runs[0].CreatedAt.IsZero() || time.Since(runs[0].CreatedAt) > 24*time.Hour {
		t.Fatalf("created_at not parsed: %v", runs[0].CreatedAt)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTemp(t)

	if hs, err := store.HighScore(GameID); err != nil || hs != 0 {
		t.Fatalf("empty high score = %d, %v", hs, err)
	}
	store.SaveRun(GameID, 300, 2, OutcomeGameOver)
	store.SaveRun(GameID, 700, 4, OutcomeGameOver)
	store.SaveRun("other", 900, 1, OutcomeGameOver)

	if hs, _ := store.HighScore(GameID); hs != 700 {
		t.Fatalf("high score %d, want 700", hs)
	}

	n, err := store.ClearRuns(GameID)
	if err != nil || n != 2 {
		t.Fatalf("ClearRuns = %d, %v", n, err)
	}
	if hs, _ := store.HighScore(GameID); hs != 0 {
		t.Fatalf("high score after clear %d", hs)
	}
	if hs, _ := store.HighScore("other"); hs != 900 {
		t.Fatalf("other game cleared too")
	}
}
