package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play [profile]",
	Short: "Play a profile",
	Long: `Start playing the given profile, or the default profile if none is named.

Controls:
  Space/Up/W/K - Jump (also starts a round)
  Left click   - Jump
  Enter/R      - Start a round
  B/Esc        - Back (outside a round)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower obstacles, wider gaps
  normal - The profile as configured
  hard   - Faster obstacles, narrower gaps

Examples:
  flappy play
  flappy play touch
  flappy play keyboard --difficulty hard
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", config.GetEnv("USER", ""), "Name pre-filled when saving a score")
}

func runPlay(_ *cobra.Command, args []string) error {
	profile := appCfg.DefaultProfile
	if len(args) == 1 {
		profile = args[0]
	}

	if !registry.Exists(profile) {
		return fmt.Errorf("unknown profile %q (run 'flappy profiles' to list them)", profile)
	}

	game, err := registry.Create(profile)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store := openStore()
	reporter := newReporter(store)
	defer closeScores(store, reporter)

	logger.Info("playing", "profile", profile, "fps", flagFPS, "seed", flagSeed)

	if _, err := tui.Run(game, reporter, terminalConfig(), flagName); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// terminalConfig builds a runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newReporter wraps store in a score reporter, or returns nil without one.
func newReporter(store *storage.Store) *leaderboard.Reporter {
	if store == nil {
		return nil
	}
	return leaderboard.NewReporter(leaderboard.NewStoreBoard(store, flappy.GameID), logger)
}

// closeScores waits for pending submissions and closes the store.
func closeScores(store *storage.Store, reporter *leaderboard.Reporter) {
	reporter.Wait()
	if store != nil {
		store.Close() //nolint:errcheck // Best-effort close on exit
	}
}
