package storage

import (
	"math"
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
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.rps/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".rps", "scores.db")); err != nil {
		t.Errorf("expected database under home: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveSession(SessionRecord{Variant: "rps", Wins: 1, TotalGames: 1}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	records, err := store.TopSessions("rps", 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 session after reopen, got %d", len(records))
	}
}

func TestStoreSaveAndRank(t *testing.T) {
	store := openTestStore(t)

	sessions := []SessionRecord{
		{Variant: "rps", Player: "ann", Wins: 4, Losses: 2, Draws: 1, TotalGames: 7, BestStreak: 2, Duration: 90 * time.Second},
		{Variant: "rps", Player: "bob", Wins: 8, Losses: 1, TotalGames: 9, BestStreak: 5},
		{Variant: "rps", Player: "cat", Wins: 6, Losses: 6, TotalGames: 12, BestStreak: 2},
		{Variant: "rps_classic", Player: "dan", Wins: 1, TotalGames: 1, BestStreak: 1},
	}
	for _, rec := range sessions {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession(%s) failed: %v", rec.Player, err)
		}
	}

	records, err := store.TopSessions("rps", 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(records))
	}

	// best_streak DESC, then wins DESC
	want := []string{"bob", "cat", "ann"}
	for i, name := range want {
		if records[i].Player != name {
			t.Errorf("rank %d = %s, expected %s", i, records[i].Player, name)
		}
	}

	ann := records[2]
	if ann.Draws != 1 || ann.Losses != 2 || ann.TotalGames != 7 {
		t.Errorf("ann round-trip mismatch: %+v", ann)
	}
	if ann.Duration != 90*time.Second {
		t.Errorf("Duration = %s, expected 1m30s", ann.Duration)
	}
	if ann.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	all, err := store.TopSessions("", 10)
	if err != nil {
		t.Fatalf("TopSessions(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 sessions across variants, got %d", len(all))
	}

	limited, err := store.TopSessions("rps", 2)
	if err != nil {
		t.Fatalf("TopSessions(limit) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 sessions with limit, got %d", len(limited))
	}
}

func TestStoreSaveSessionRequiresVariant(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(SessionRecord{Wins: 1}); err == nil {
		t.Error("SaveSession without variant should fail")
	}
}

func TestStoreBestStreakAndStats(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestStreak("rps")
	if err != nil {
		t.Fatalf("BestStreak() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty table, got %d", best)
	}

	store.SaveSession(SessionRecord{Variant: "rps", Wins: 3, Losses: 1, Draws: 2, TotalGames: 6, BestStreak: 3})
	store.SaveSession(SessionRecord{Variant: "rps", Wins: 1, Losses: 4, TotalGames: 5, BestStreak: 1})

	best, err = store.BestStreak("rps")
	if err != nil {
		t.Fatalf("BestStreak() failed: %v", err)
	}
	if best != 3 {
		t.Errorf("Expected best streak 3, got %d", best)
	}

	st, err := store.Stats("rps")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := Stats{Sessions: 2, Wins: 4, Losses: 5, Draws: 2, TotalGames: 11, BestStreak: 3}
	if st != want {
		t.Errorf("Stats() = %+v, expected %+v", st, want)
	}

	empty, err := store.Stats("rps_classic")
	if err != nil {
		t.Fatalf("Stats(empty) failed: %v", err)
	}
	if empty != (Stats{}) {
		t.Errorf("Stats(empty) = %+v, expected zero", empty)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{Variant: "rps", BestStreak: 2})
	store.SaveSession(SessionRecord{Variant: "rps_classic", BestStreak: 4})

	if err := store.ClearSessions("rps"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	records, _ := store.TopSessions("rps", 10)
	if len(records) != 0 {
		t.Errorf("Expected 0 rps sessions after clear, got %d", len(records))
	}
	others, _ := store.TopSessions("rps_classic", 10)
	if len(others) != 1 {
		t.Errorf("Clear should not touch other variants, got %d", len(others))
	}
}

func TestSessionRecordWinRate(t *testing.T) {
	tests := []struct {
		rec  SessionRecord
		want float64
	}{
		{SessionRecord{}, 0},
		{SessionRecord{Wins: 1, TotalGames: 4}, 25},
		{SessionRecord{Wins: 2, TotalGames: 3}, 200.0 / 3},
	}
	for _, tt := range tests {
		if got := tt.rec.WinRate(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WinRate(%+v) = %f, expected %f", tt.rec, got, tt.want)
		}
	}
}
