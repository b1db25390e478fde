package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rps-showdown/internal/registry"
	"github.com/vovakirdan/rps-showdown/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) (SessionModel, *[]*fakeGame) {
	t.Helper()
	var created []*fakeGame
	m := NewSessionModel(SessionOptions{
		Store:  store,
		Config: testConfig(),
		User:   "bob",
		Configure: func(g registry.Game, user string) {
			if user != "bob" {
				t.Errorf("configure user = %q, want bob", user)
			}
			if fg, ok := g.(*fakeGame); ok {
				fg.summary = playedSummary()
				created = append(created, fg)
			}
		},
	})
	return m, &created
}

// press feeds a message and returns the session model.
func press(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	store := openStore(t)
	m, created := newTestSession(t, store)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter should start the selected game")
	}
	if cmd == nil {
		t.Error("starting a game should start the tick loop")
	}
	if len(*created) != 1 || (*created)[0].resets != 1 {
		t.Fatalf("expected one configured and reset game, got %+v", *created)
	}
	if !strings.Contains(m.View(), "FAKE") {
		t.Error("session view should show the game")
	}

	m, _ = press(t, m, runeKey('b'))
	if m.InGame() {
		t.Error("back should return to the menu")
	}
	if (*created)[0].closed != 1 {
		t.Error("leaving the game should close it")
	}
	if !strings.Contains(m.View(), "Fake Showdown") {
		t.Error("menu should list the registered variant")
	}

	sessions, err := store.TopSessions(fakeGameID, 10)
	if err != nil {
		t.Fatalf("TopSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Player != "bob" {
		t.Errorf("expected bob's session on the board, got %+v", sessions)
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m, _ := newTestSession(t, openStore(t))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "LEADERBOARD") {
		t.Fatal("tab should open the leaderboard")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "LEADERBOARD") {
		t.Error("esc should return to the menu")
	}
	if m.quitting {
		t.Error("leaving the leaderboard should not end the session")
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	m, created := newTestSession(t, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := press(t, m, runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Error("q in game should end the session")
	}
	if (*created)[0].closed != 1 {
		t.Error("quitting should close the game")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestSessionReleaseOnDisconnect(t *testing.T) {
	m, created := newTestSession(t, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Release()

	if (*created)[0].closed != 1 {
		t.Error("release should close the running game")
	}
	if m.InGame() {
		t.Error("release should drop the running game")
	}

	_, cmd := press(t, m, runeKey('r'))
	if cmd == nil {
		t.Error("updates after release should quit")
	}

	// A second release is a no-op.
	m.Release()
	if (*created)[0].closed != 1 {
		t.Errorf("closed = %d, want 1", (*created)[0].closed)
	}
}

func TestSessionTicksDoNotReachMenu(t *testing.T) {
	m, _ := newTestSession(t, nil)

	m, cmd := press(t, m, TickMsg(time.Now()))
	if cmd != nil {
		t.Error("menu should ignore stray ticks")
	}
	if m.InGame() {
		t.Error("tick should not start a game")
	}
}
