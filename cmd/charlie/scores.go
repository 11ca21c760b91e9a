package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/compulsive-charlie/internal/storage"
)

var (
	flagRecent bool
	flagStats  bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show stored runs",
	Long: `Display the best stored runs, the latest runs or overall statistics.

Examples:
  charlie scores
  charlie scores --recent --limit 20
  charlie scores --stats
  charlie scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show statistics over all runs")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored runs")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	out := cmd.OutOrStdout()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "All runs deleted.")
		return nil
	case flagStats:
		st, err := store.Stats()
		if err != nil {
			return err
		}
		if st.Runs == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "Runs:         %d (%d finished)\n", st.Runs, st.Finished)
		fmt.Fprintf(out, "High score:   %d\n", st.HighScore)
		fmt.Fprintf(out, "Average:      %.1f\n", st.AvgScore)
		fmt.Fprintf(out, "Notes hit:    %d\n", st.TotalHits)
		fmt.Fprintf(out, "Best combo:   %d\n", st.BestCombo)
		fmt.Fprintf(out, "Longest day:  %d steps\n", st.LongestRun)
		fmt.Fprintf(out, "On schedule:  %.0f%%\n", st.OnSchedulePct)
		fmt.Fprintf(out, "Last played:  %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
		return nil
	}

	title := "Best Days"
	runs, err := store.TopRuns(flagLimit)
	if flagRecent {
		title = "Recent Days"
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'charlie play' to record the first day!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-8s  %-16s  %s\n", "Rank", "Score", "Steps", "Schedule", "Date", "Run")
	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-8s  %-16s  %s\n", "----", "-----", "-----", "--------", "----", "---")
	for i, rec := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-5d  %-8d  %-16s  %s\n",
			i+1, rec.Recap.Score, rec.Recap.Steps, rec.Recap.SchedulePoints,
			rec.CreatedAt.Format("2006-01-02 15:04"), shortID(rec.RunID))
	}

	fmt.Fprintln(out)
	if high, err := store.HighScore(); err == nil {
		fmt.Fprintf(out, "Best: %d\n", high)
	}
	return nil
}

// shortID returns the first block of a run UUID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
