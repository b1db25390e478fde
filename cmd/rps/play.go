package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: rps).

Controls:
  R/1        - Rock
  P/2        - Paper
  S/3        - Scissors
  N/Enter    - Next round (after a result)
  X          - Reset the match
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Presets:
  enhanced - Streak tiers, best streak, win rate, shake and cycle haptics
  classic  - Score and streak only; best streak resets with the match

Examples:
  rps play
  rps play rps_classic
  rps play --variant-preset classic
  rps play --no-splash --seed 42
  rps play --config ./my-rps.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "rps"
	if len(args) == 1 {
		gameID = args[0]
	}

	cfgs, err := resolveConfigs()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "rps")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := createGame(gameID, cfgs, logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	if err := tui.Run(game, store, cfg,
		tui.WithPlayer(playerName()),
		tui.WithLogger(logger),
		tui.WithBellWriter(os.Stdout),
		tui.WithScreenshotDir(tui.DefaultScreenshotDir()),
	); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
