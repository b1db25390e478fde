package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rps-showdown/internal/storage"
)

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.GameID != fakeGameID || res.Quit || res.WantsScoreboard {
		t.Errorf("Result() = %+v, want %q selected", res, fakeGameID)
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor < 0 || m.cursor >= len(m.items) {
		t.Errorf("cursor = %d out of range [0,%d)", m.cursor, len(m.items))
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuKey(t, NewMenuModel(nil, testConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsScoreboard {
		t.Error("tab should request the leaderboard")
	}

	m = menuKey(t, NewMenuModel(nil, testConfig()), runeKey('q'))
	if !m.Result().Quit || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuShowsBestStreakAndDescription(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveSession(storage.SessionRecord{Variant: fakeGameID, Wins: 4, TotalGames: 4, BestStreak: 4}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	view := NewMenuModel(store, testConfig()).View()
	if !strings.Contains(view, "best streak 4") {
		t.Errorf("menu should show the recorded best streak:\n%s", view)
	}
	if !strings.Contains(view, "test double") {
		t.Errorf("menu should show the variant description:\n%s", view)
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	next, _ := NewMenuModel(nil, testConfig()).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText should not trim, got %q", got)
	}
}

func TestSessionRows(t *testing.T) {
	created := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)
	rows := sessionRows([]storage.SessionRecord{
		{Player: "alice", Wins: 3, Losses: 1, Draws: 0, TotalGames: 4, BestStreak: 3, CreatedAt: created},
		{Wins: 0, Losses: 2, TotalGames: 2, CreatedAt: created},
	})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := []string{"#1", "alice", "3", "3-1-0", "75%", "Mar 04 15:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "#2" || rows[1][1] != "-" || rows[1][4] != "0%" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestScoreboardShowsStats(t *testing.T) {
	store := openStore(t)
	for _, rec := range []storage.SessionRecord{
		{Variant: fakeGameID, Player: "a", Wins: 2, Losses: 1, TotalGames: 3, BestStreak: 2},
		{Variant: fakeGameID, Player: "b", Wins: 1, Draws: 1, TotalGames: 2, BestStreak: 1},
	} {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession: %v", err)
		}
	}

	sb := NewScoreboardModel(store, 80, 24)
	sb.SelectVariant(fakeGameID)
	if len(sb.sessions) != 2 {
		t.Fatalf("loaded %d sessions, want 2", len(sb.sessions))
	}
	if sb.sessions[0].Player != "a" {
		t.Errorf("best streak should rank first, got %q", sb.sessions[0].Player)
	}
	if line := sb.statsLine(); !strings.Contains(line, "2 sessions") || !strings.Contains(line, "5 games") {
		t.Errorf("statsLine = %q", line)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	sb := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(sb.View(), "No sessions recorded yet") {
		t.Error("empty board should say so")
	}
	if sb.statsLine() != "" {
		t.Error("empty board has no stats line")
	}
}
