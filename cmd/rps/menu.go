package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-showdown/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After you quit a game, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Leaderboard
  Q            - Quit

Examples:
  rps menu
  rps menu --fps 60
  rps menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfgs, err := resolveConfigs()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "rps")
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, "")
			if sbErr != nil {
				return fmt.Errorf("leaderboard: %w", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := createGame(menuResult.GameID, cfgs, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg,
			tui.WithPlayer(playerName()),
			tui.WithLogger(logger),
			tui.WithBellWriter(os.Stdout),
			tui.WithScreenshotDir(tui.DefaultScreenshotDir()),
		); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
