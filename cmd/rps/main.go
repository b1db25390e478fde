// rps is a rock-paper-scissors showdown for the terminal.
//
// Usage:
//
//	rps list                 - List available variants
//	rps play [variant]       - Play a variant (default: rps)
//	rps menu                 - Pick a variant interactively
//	rps serve                - Start SSH server for remote play
//	rps scores [variant]     - Show the leaderboard
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.rps/scores.db)
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/rps-showdown/internal/games/rps"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rps",
	Short: "RPS Showdown - rock, paper, scissors in your terminal",
	Long: `RPS Showdown is a terminal rock-paper-scissors game against the
computer, with streaks, a suspenseful reveal and a local leaderboard.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View the leaderboard

Examples:
  rps list
  rps play
  rps play rps_classic
  rps menu
  rps serve --ssh :2222
  rps scores rps`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaults := core.DefaultConfig()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", defaults.TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the command logger. Without --log-file it writes to
// fallback, which is io.Discard for the full-screen commands.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the leaderboard. A broken database only disables it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		logger.Warn("leaderboard disabled", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

// playerName is the name recorded on local sessions.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
