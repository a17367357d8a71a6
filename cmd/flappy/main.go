// flappy is a terminal flappy-bird game with local play, an SSH server and a
// headless simulator.
//
// Usage:
//
//	flappy profiles          - List configured profiles
//	flappy play [profile]    - Play a profile
//	flappy menu              - Start menu to pick profiles interactively
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show high scores
//	flappy sim               - Run autopilot rounds without a terminal
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/flappy.db)
//	--config <path>       - Load profiles from a YAML file
//	--difficulty <preset> - Apply easy, normal or hard to every profile
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// Set up by the root command before any subcommand runs.
var (
	logger   *log.Logger
	logClose func()
	appCfg   config.FlappyConfig
)

func main() {
	err := rootCmd.Execute()
	if logClose != nil {
		logClose()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a flappy-bird game for your terminal",
	Long: `Flappy is a terminal flappy-bird game. Jump through the gaps,
score a point for every obstacle passed, and keep off the edges.

Available commands:
  profiles - Show configured profiles
  play     - Play a profile directly
  menu     - Interactive profile picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run autopilot rounds headless

Examples:
  flappy play
  flappy play touch --difficulty hard
  flappy menu
  flappy serve --ssh :2222
  flappy sim --rounds 20`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flappy.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom profiles YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup builds the logger, loads the profiles and registers them.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	logger, logClose, err = newLogger(flagLogLevel, flagLogFile, logsToTerminal(cmd))
	if err != nil {
		return err
	}

	appCfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	if preset != "" {
		for name, p := range appCfg.Profiles {
			config.ApplyDifficulty(&p, preset)
			appCfg.Profiles[name] = p
		}
		logger.Debug("difficulty applied", "preset", preset)
	}

	flappy.RegisterProfiles(appCfg)
	return nil
}

// logsToTerminal reports whether cmd may log to stderr. Interactive commands
// own the terminal, so they only log to a file.
func logsToTerminal(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "play", "menu":
		return false
	}
	return true
}

// newLogger creates the process logger. Without a log file, logs go to
// stderr when toStderr is set and are dropped otherwise.
func newLogger(level, path string, toStderr bool) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case path != "":
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() } //nolint:errcheck // Best-effort close on exit
	case toStderr:
		w = os.Stderr
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           lvl,
	})
	return l, closeFn, nil
}

// openStore opens the scores database. Failures are logged and yield nil so
// the game still runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
