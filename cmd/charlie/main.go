// charlie is a terminal rhythm game about getting through a day.
//
// Usage:
//
//	charlie play              - Play a run (menu, history, game)
//	charlie simulate          - Let the bot play runs and print recaps
//	charlie list              - List registered games
//	charlie content           - Show activities, thoughts and the schedule
//	charlie scores            - Show stored runs and statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.charlie/runs.db)
//	--config <path>       - Use a custom charlie.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
//	--cheats              - Enable cheat keys
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/compulsive-charlie/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/compulsive-charlie/internal/games/charlie"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagCheats     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "charlie",
	Short: "Compulsive Charlie - a rhythm game about getting through the day",
	Long: `Compulsive Charlie is a terminal rhythm game. Hit the notes flying at
Charlie to keep the emotions down, then pick a thought and jump to the next
activity of the day until it is time for bed.

Available commands:
  play      - Play a run
  simulate  - Let the bot play and print the recaps
  list      - Show registered games
  content   - Show activities, thoughts and the schedule
  scores    - View stored runs

Examples:
  charlie play
  charlie play --difficulty easy
  charlie simulate --runs 5 --seed 42
  charlie scores --recent`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.charlie/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom charlie.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagCheats, "cheats", false, "Enable cheat keys (0 combo, 9 calm, e end run)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the logger shared by the commands. Logs go to stderr so
// they stay out of the way of printed tables.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "charlie",
		Level:           level,
	})
	return logger, nil
}

// loadConfig reads the run config and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyRhythmPreset(&cfg.Rhythm, config.ParsePreset(flagDifficulty))
	return cfg, nil
}

// seed returns the --seed flag, or a time based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
