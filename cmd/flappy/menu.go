package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a profile picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a profile.
Leaving a game with B or Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select profile
  Tab          - High scores
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagName, "name", config.GetEnv("USER", ""), "Name pre-filled when saving a score")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	reporter := newReporter(store)
	defer closeScores(store, reporter)

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(cfg, highScore(store))
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.Profile)
		if err != nil {
			logger.Error("cannot create game", "profile", menuResult.Profile, "error", err)
			continue
		}

		// Fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, reporter, cfg, flagName)
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}

// highScore returns the best stored score, or 0 when unknown.
func highScore(store *storage.Store) int {
	if store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	best, err := store.HighScore(ctx, flappy.GameID)
	if err != nil {
		logger.Warn("cannot read high score", "error", err)
		return 0
	}
	return best
}
