package main

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

func TestPlayRounds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results := make(chan flappy.RoundResult, 1)
	machine := flappy.NewMachine("keyboard", config.KeyboardProfile(), flappy.WithSeed(1))
	runner := loop.New(machine,
		loop.FixedViewport(core.Viewport{W: 640, H: 384}),
		loop.WithTickRate(5000),
		loop.WithController(loop.NewAutopilot(1, 0.5)),
	)
	runner.OnRoundEnd = func(r flappy.RoundResult) { results <- r }

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	summary := simSummary{causes: make(map[flappy.EndCause]int)}
	playRounds(ctx, runner, results, 3, summary.add)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.rounds != 3 {
		t.Fatalf("rounds = %d, want 3", summary.rounds)
	}
	if machine.Round() != 3 {
		t.Errorf("machine rounds = %d, want 3", machine.Round())
	}
	if summary.causes[flappy.CauseBounds]+summary.causes[flappy.CauseObstacle] != 3 {
		t.Errorf("causes = %v, want 3 terminal rounds", summary.causes)
	}
}

func TestSimSummaryAdd(t *testing.T) {
	s := simSummary{causes: make(map[flappy.EndCause]int)}
	s.add(flappy.RoundResult{Score: 3, Frames: 100, Cause: flappy.CauseObstacle})
	s.add(flappy.RoundResult{Score: 5, Frames: 50, Cause: flappy.CauseBounds})

	if s.rounds != 2 || s.best != 5 || s.total != 8 || s.frames != 150 {
		t.Errorf("summary = %+v", s)
	}
	if s.causes[flappy.CauseObstacle] != 1 || s.causes[flappy.CauseBounds] != 1 {
		t.Errorf("causes = %v", s.causes)
	}
}
