package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/compulsive-charlie/internal/core"
	"github.com/vovakirdan/compulsive-charlie/internal/director"
	"github.com/vovakirdan/compulsive-charlie/internal/games/charlie"
	"github.com/vovakirdan/compulsive-charlie/internal/storage"
)

var (
	flagRuns     int
	flagAccuracy float64
	flagMaxTicks int
	flagSave     bool
	flagVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the bot play runs and print the recaps",
	Long: `Play runs without a terminal UI. The bot presses the matching keys
for each note group with the given accuracy, takes the first affordable
thought that keeps every platform in reach and prefers the scheduled activity
when it is in reach.

Runs are seeded from --seed, so the same seed always replays the same days.

Examples:
  charlie simulate
  charlie simulate --runs 20 --accuracy 0.6
  charlie simulate --seed 7 --verbose
  charlie simulate --runs 5 --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs to play")
	simulateCmd.Flags().Float64Var(&flagAccuracy, "accuracy", 0.85, "Chance the bot hits a note group (0-1)")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 200000, "Give up on a run after this many ticks")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the recaps in the runs database")
	simulateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print the activities of every run")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagRuns)
	}
	if flagAccuracy < 0 || flagAccuracy > 1 {
		return fmt.Errorf("--accuracy must be within 0..1, got %v", flagAccuracy)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	settings, err := loadConfig()
	if err != nil {
		return err
	}
	// Tutorials only pause the run; the bot clicks through them anyway.
	settings.ShowTutorial = false

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	base := seed()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-4s  %-20s  %-6s  %-5s  %-8s  %-5s  %-6s  %s\n",
		"Run", "Seed", "Score", "Steps", "Schedule", "Hits", "Misses", "Ended")
	fmt.Fprintf(out, "  %-4s  %-20s  %-6s  %-5s  %-8s  %-5s  %-6s  %s\n",
		"---", "----", "-----", "-----", "--------", "----", "------", "-----")

	total := 0
	for i := 0; i < flagRuns; i++ {
		runSeed := base + int64(i)
		game, err := charlie.NewWithConfig(settings, logger)
		if err != nil {
			return err
		}
		recap, ticks := simulate(game, runSeed)
		if game.Err() != nil {
			return game.Err()
		}
		total += recap.Score

		ended := "bed"
		if !recap.Done {
			ended = fmt.Sprintf("cut (%d ticks)", ticks)
		}
		fmt.Fprintf(out, "  %-4d  %-20d  %-6d  %-5d  %-8d  %-5d  %-6d  %s\n",
			i+1, runSeed, recap.Score, recap.Steps, recap.SchedulePoints, recap.Hits, recap.Misses, ended)
		if flagVerbose {
			fmt.Fprintf(out, "        %s\n", strings.Join(recap.Activities, " > "))
		}

		if store != nil {
			runID, err := store.SaveRun(runSeed, recap)
			if err != nil {
				return err
			}
			logger.Debug("run saved", "run_id", runID, "score", recap.Score)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Average score: %.1f over %d runs\n", float64(total)/float64(flagRuns), flagRuns)
	return nil
}

// simulate plays one run with the bot and returns its recap and tick count.
func simulate(game *charlie.Game, runSeed int64) (director.Recap, int) {
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: runSeed})
	bot := charlie.NewBot(runSeed, flagAccuracy)
	for game.Ticks() < flagMaxTicks && !game.State().GameOver {
		game.Step(bot.Next(game))
	}
	return game.Recap(), game.Ticks()
}
