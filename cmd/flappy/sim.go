package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

var (
	flagSimRounds int
	flagSimRate   int
	flagSimSlip   float64
	flagSimWidth  float64
	flagSimHeight float64
	flagSimSubmit bool
	flagSimName   string
)

var simCmd = &cobra.Command{
	Use:   "sim [profile]",
	Short: "Run autopilot rounds without a terminal",
	Long: `Run rounds headless with an autopilot steering toward each gap.
Rounds end when the autopilot slips; a higher --slip ends them sooner.

Examples:
  flappy sim
  flappy sim touch --rounds 50 --slip 0.05
  flappy sim --seed 42 --width 1280 --height 720
  flappy sim --submit --name bot`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 10, "Number of rounds to play")
	simCmd.Flags().IntVar(&flagSimRate, "rate", 2000, "Ticks per second")
	simCmd.Flags().Float64Var(&flagSimSlip, "slip", 0.02, "Chance the autopilot skips a needed jump")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 640, "Viewport width in pixels")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 384, "Viewport height in pixels")
	simCmd.Flags().BoolVar(&flagSimSubmit, "submit", false, "Save scores to the database")
	simCmd.Flags().StringVar(&flagSimName, "name", "autopilot", "Name scores are saved under")
}

// simSummary aggregates finished rounds.
type simSummary struct {
	rounds int
	best   int
	total  int
	frames uint64
	causes map[flappy.EndCause]int
}

func (s *simSummary) add(r flappy.RoundResult) {
	s.rounds++
	s.best = max(s.best, r.Score)
	s.total += r.Score
	s.frames += r.Frames
	s.causes[r.Cause]++
}

func runSim(cmd *cobra.Command, args []string) error {
	name := appCfg.DefaultProfile
	if len(args) == 1 {
		name = args[0]
	}
	profile, err := appCfg.Profile(name)
	if err != nil {
		return err
	}
	if flagSimWidth <= 0 || flagSimHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", flagSimWidth, flagSimHeight)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var submit func(int)
	if flagSimSubmit {
		store := openStore()
		reporter := newReporter(store)
		defer closeScores(store, reporter)
		submit = func(score int) { reporter.Submit(flagSimName, score) }
	}

	results := make(chan flappy.RoundResult, 1)
	machine := flappy.NewMachine(name, profile, flappy.WithSeed(seed))
	runner := loop.New(machine,
		loop.FixedViewport(core.Viewport{W: flagSimWidth, H: flagSimHeight}),
		loop.WithTickRate(flagSimRate),
		loop.WithLogger(logger),
		loop.WithController(loop.NewAutopilot(seed, flagSimSlip)),
	)
	runner.OnRoundEnd = func(r flappy.RoundResult) { results <- r }

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	logger.Info("simulating", "profile", name, "rounds", flagSimRounds, "seed", seed)

	summary := simSummary{causes: make(map[flappy.EndCause]int)}
	playRounds(ctx, runner, results, flagSimRounds, func(r flappy.RoundResult) {
		summary.add(r)
		if submit != nil {
			submit(r.Score)
		}
	})

	cancel()
	if err := <-done; err != nil {
		return err
	}

	printSummary(name, summary)
	return nil
}

// playRounds starts one round at a time and hands each result to onResult.
// It returns early when ctx is cancelled.
func playRounds(ctx context.Context, r *loop.Runner, results <-chan flappy.RoundResult, rounds int, onResult func(flappy.RoundResult)) {
	for i := 0; i < rounds; i++ {
		if !r.Send(loop.CmdStart) {
			return
		}
		select {
		case res := <-results:
			onResult(res)
		case <-ctx.Done():
			return
		}
	}
}

func printSummary(profile string, s simSummary) {
	fmt.Printf("Profile: %s\n", profile)
	fmt.Printf("Rounds:  %d\n", s.rounds)
	if s.rounds == 0 {
		return
	}
	fmt.Printf("Best:    %d\n", s.best)
	fmt.Printf("Average: %.1f\n", float64(s.total)/float64(s.rounds))
	fmt.Printf("Frames:  %d\n", s.frames)
	for _, cause := range []flappy.EndCause{flappy.CauseBounds, flappy.CauseObstacle} {
		fmt.Printf("  %-14s %d\n", cause.String()+":", s.causes[cause])
	}
}
