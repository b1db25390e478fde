package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/registry"
	"github.com/vovakirdan/rps-showdown/internal/storage"
)

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithPlayer sets the player name recorded on the leaderboard.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		m.player = name
	}
}

// WithLogger sets the logger used for session bookkeeping.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithBellWriter sets where the terminal bell is written.
// A nil writer disables the bell.
func WithBellWriter(w io.Writer) ModelOption {
	return func(m *Model) {
		m.bell = w
	}
}

// WithScreenshotDir enables ctrl+s screenshots into dir.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) {
		m.screenshotDir = dir
	}
}

// WithBackToMenu lets b/esc leave the game instead of being ignored.
func WithBackToMenu() ModelOption {
	return func(m *Model) {
		m.allowBack = true
	}
}

// Model is the Bubble Tea model for running one game session.
type Model struct {
	game          registry.Game
	screen        *core.Screen
	store         *storage.Store
	config        core.RuntimeConfig
	inputFrame    core.InputFrame
	gameState     core.GameState
	keyMapper     *KeyMapper
	logger        *log.Logger
	player        string
	bell          io.Writer
	screenshotDir string
	allowBack     bool
	quitting      bool
	backToMenu    bool
	finished      bool // session summary saved and game closed
	lastShot      string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}

	if m.allowBack && m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.finish()
		return m, nil
	}

	return m, nil
}

// handleResize keeps the match when the game supports it and resets it otherwise.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	next := tickCmd(m.config.TickRate)
	if result.Bell && m.bell != nil {
		return m, tea.Batch(next, bellCmd(m.bell))
	}
	return m, next
}

// bellCmd rings the terminal bell on w.
func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		w.Write([]byte{'\a'})
		return nil
	}
}

// finish records the session on the leaderboard and releases the game.
// It runs at most once per model.
func (m *Model) finish() {
	if m.finished {
		return
	}
	m.finished = true

	if s, ok := m.game.(registry.Summarizer); ok {
		m.saveSession(s.Summary())
	}
	registry.Close(m.game)
}

func (m *Model) saveSession(sum core.SessionSummary) {
	if !sum.Played() || m.store == nil {
		return
	}

	rec := storage.SessionRecord{
		Variant:    sum.GameID,
		Player:     m.player,
		Wins:       sum.Wins,
		Losses:     sum.Losses,
		Draws:      sum.Draws,
		TotalGames: sum.TotalGames,
		BestStreak: sum.BestStreak,
		Duration:   sum.Duration,
	}
	id, err := m.store.SaveSession(rec)
	if err != nil {
		m.logger.Warn("could not save session", "variant", sum.GameID, "error", err)
		return
	}
	m.logger.Info("session saved",
		"id", id,
		"variant", sum.GameID,
		"player", m.player,
		"games", sum.TotalGames,
		"best_streak", sum.BestStreak,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.lastShot = path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Finished reports whether the session has been recorded and the game released.
func (m Model) Finished() bool {
	return m.finished
}

// LastScreenshot returns the path of the most recent screenshot, if any.
func (m Model) LastScreenshot() string {
	return m.lastShot
}

// DefaultScreenshotDir returns ~/.rps/screenshots.
func DefaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rps", "screenshots")
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok && !m.finished {
		// Program was killed before a quit key was seen.
		m.finish()
	}
	return err
}
