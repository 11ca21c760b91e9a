package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/core"
	"github.com/vovakirdan/compulsive-charlie/internal/games/charlie"
	"github.com/vovakirdan/compulsive-charlie/internal/platform/tui"
	"github.com/vovakirdan/compulsive-charlie/internal/storage"
)

var flagSkipMenu bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start the main menu and play Compulsive Charlie.

Controls:
  Arrows or WASD      - Hit notes, move in menus
  Enter/Space         - Confirm
  B/Esc               - Previous tutorial page
  X                   - Skip tutorials
  P                   - Pause
  R                   - New day (after game over)
  Q/Ctrl+C            - Quit

Difficulty options:
  easy   - Wider hit windows, slower beam leveling
  normal - Default windows
  hard   - Tighter hit windows, faster beam leveling
  fixed  - Default windows, the beam never levels

Examples:
  charlie play
  charlie play --difficulty hard
  charlie play --now
  charlie play --config ./my-charlie.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSkipMenu, "now", false, "Skip the menu and start a run")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	settings, err := loadConfig()
	if err != nil {
		return err
	}

	// Get terminal size early for the menu
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if flagSkipMenu {
		return playRun(settings, cfg, store, logger)
	}

	// Return to the menu after each run
	for {
		choice, updated, menuErr := tui.RunMenu(store, cfg)
		if menuErr != nil {
			return fmt.Errorf("menu: %w", menuErr)
		}
		cfg = updated

		switch choice {
		case tui.ChoicePlay:
			cfg.Seed = seed()
			if err := playRun(settings, cfg, store, logger); err != nil {
				return err
			}
		case tui.ChoiceHistory:
			back, boardErr := tui.RunBoard(store, cfg.ScreenW, cfg.ScreenH)
			if boardErr != nil {
				return fmt.Errorf("history: %w", boardErr)
			}
			if !back {
				return nil
			}
		default:
			return nil
		}
	}
}

func playRun(settings config.Config, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	game, err := charlie.NewWithConfig(settings, logger)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger.Info("starting run", "seed", cfg.Seed, "difficulty", config.ParsePreset(flagDifficulty))
	if err := tui.Run(game, cfg, tui.Options{Store: store, Logger: logger, Cheats: flagCheats}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
