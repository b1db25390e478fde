package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rps-showdown/internal/platform/tui"
	"github.com/vovakirdan/rps-showdown/internal/registry"
	"github.com/vovakirdan/rps-showdown/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the top sessions, ranked by best streak then wins.
Without a variant, sessions of every variant are ranked together.

Examples:
  rps scores
  rps scores rps_classic
  rps scores --limit 25
  rps scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the leaderboard interactively")
}

func runScores(cmd *cobra.Command, args []string) error {
	variant := ""
	title := "all variants"
	if len(args) == 1 {
		variant = args[0]
		info, ok := registry.Lookup(variant)
		if !ok {
			return fmt.Errorf("unknown variant %q (run 'rps list' to see available variants)", variant)
		}
		title = info.Title
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height, variant)
		return err
	}

	sessions, err := store.TopSessions(variant, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Leaderboard - %s\n\n", title)

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'rps play' to get on the board!")
		return nil
	}

	printSessions(out, sessions, variant == "")

	stats, err := store.Stats(variant)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Sessions: %d  Games: %d  W-L-D: %d-%d-%d  Best streak: %d\n",
			stats.Sessions, stats.TotalGames, stats.Wins, stats.Losses, stats.Draws, stats.BestStreak)
	}
	return nil
}

// printSessions writes sessions as an aligned table.
func printSessions(w io.Writer, sessions []storage.SessionRecord, withVariant bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "  Rank\tPlayer\tBest\tW-L-D\tWin %\tTime\tDate"
	if withVariant {
		header = "  Rank\tVariant\tPlayer\tBest\tW-L-D\tWin %\tTime\tDate"
	}
	fmt.Fprintln(tw, header)

	for i, s := range sessions {
		row := fmt.Sprintf("  %d\t", i+1)
		if withVariant {
			row += s.Variant + "\t"
		}
		row += fmt.Sprintf("%s\t%d\t%d-%d-%d\t%.1f\t%s\t%s",
			s.Player, s.BestStreak, s.Wins, s.Losses, s.Draws, s.WinRate(),
			s.Duration.Round(time.Second), s.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintln(tw, row)
	}
	tw.Flush()
}
