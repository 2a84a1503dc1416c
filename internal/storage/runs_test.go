package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "defense", Layout: "classic", Outcome: "loss", Wave: 2, Score: 3, Seed: 1},
		{GameID: "defense", Layout: "classic", Outcome: "win", Wave: 5, Score: 20, LivesLeft: 2, MoneyLeft: 8, Seed: 2},
		{GameID: "defense_wide", Layout: "wide", Outcome: "quit", Wave: 1, Seed: 3},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("defense", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 classic runs, got %d", len(got))
	}
	// Newest first
	if got[0].Outcome != "win" || got[0].Seed != 2 || got[0].MoneyLeft != 8 {
		t.Errorf("Newest run = %+v", got[0])
	}
	if got[1].Outcome != "loss" {
		t.Errorf("Oldest run outcome = %q, expected loss", got[1].Outcome)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 3 || all[0].GameID != "defense_wide" {
		t.Errorf("RecentRuns(all) = %d runs, first %q", len(all), all[0].GameID)
	}

	limited, _ := store.RecentRuns("", 1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}
}

func TestSaveRunValidation(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{GameID: "defense"}); err == nil {
		t.Error("SaveRun() without outcome should fail")
	}
	if _, err := store.SaveRun(RunRecord{Outcome: "win"}); err == nil {
		t.Error("SaveRun() without game id should fail")
	}
}

func TestRunStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.RunStats("defense")
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", empty)
	}

	for _, r := range []RunRecord{
		{GameID: "defense", Outcome: "win", Wave: 5, Score: 20},
		{GameID: "defense", Outcome: "loss", Wave: 3, Score: 9},
		{GameID: "defense", Outcome: "loss", Wave: 2, Score: 4},
		{GameID: "defense", Outcome: "quit", Wave: 1},
		{GameID: "defense_wide", Outcome: "win", Wave: 8, Score: 50},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.RunStats("defense")
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Wins != 1 || stats.Losses != 2 {
		t.Errorf("Runs/Wins/Losses = %d/%d/%d, expected 4/1/2", stats.Runs, stats.Wins, stats.Losses)
	}
	if stats.BestWave != 5 || stats.HighScore != 20 {
		t.Errorf("BestWave %d HighScore %d, expected 5/20", stats.BestWave, stats.HighScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestClearScoresClearsRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("defense", 10)
	store.SaveRun(RunRecord{GameID: "defense", Outcome: "win"})
	store.SaveRun(RunRecord{GameID: "defense_wide", Outcome: "win"})

	if err := store.ClearScores("defense"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	runs, _ := store.RecentRuns("defense", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	wide, _ := store.RecentRuns("defense_wide", 10)
	if len(wide) != 1 {
		t.Errorf("Wide runs should not be affected, got %d", len(wide))
	}
}

func TestClearScoresIsAtomic(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("defense", 10)
	if _, err := store.db.Exec("DROP TABLE runs"); err != nil {
		t.Fatalf("DROP TABLE failed: %v", err)
	}

	if err := store.ClearScores("defense"); err == nil {
		t.Fatal("ClearScores() without a runs table should fail")
	}
	if high, _ := store.HighScore("defense"); high != 10 {
		t.Errorf("HighScore() = %d after failed clear, expected 10", high)
	}
}
