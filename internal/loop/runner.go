// Package loop drives a flappy.Machine in real time without a terminal.
// One goroutine owns the machine; commands arrive through an inbox channel
// and are applied at the next tick boundary.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Command is an input delivered to the runner.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdJump
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdJump:
		return "jump"
	default:
		return "none"
	}
}

// ViewportFunc supplies the current viewport. It is called once per tick.
type ViewportFunc func() core.Viewport

// FixedViewport returns a ViewportFunc that never changes.
func FixedViewport(vp core.Viewport) ViewportFunc {
	return func() core.Viewport { return vp }
}

// Controller produces input from the latest state. It is called on the
// runner goroutine before every tick while a round is playing.
type Controller interface {
	Decide(snap flappy.Snapshot) Command
}

// Runner ticks a machine at a fixed rate while a round is playing and stops
// ticking as soon as the round ends.
type Runner struct {
	Inbox chan Command

	machine    *flappy.Machine
	viewport   ViewportFunc
	tickHz     int
	logger     *log.Logger
	controller Controller

	// OnFrame is called after every tick with the state to draw.
	OnFrame func(flappy.Snapshot)
	// OnRoundEnd is called once per finished round.
	OnRoundEnd func(flappy.RoundResult)
}

// Option configures a Runner.
type Option func(*Runner)

// WithTickRate sets ticks per second.
func WithTickRate(hz int) Option {
	return func(r *Runner) {
		if hz > 0 {
			r.tickHz = hz
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithController attaches an input source polled every tick.
func WithController(c Controller) Option {
	return func(r *Runner) { r.controller = c }
}

// New creates a runner for m.
func New(m *flappy.Machine, vp ViewportFunc, opts ...Option) *Runner {
	r := &Runner{
		Inbox:    make(chan Command, 64),
		machine:  m,
		viewport: vp,
		tickHz:   60,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send queues a command without blocking. Returns false if the inbox is full.
func (r *Runner) Send(c Command) bool {
	select {
	case r.Inbox <- c:
		return true
	default:
		return false
	}
}

// Run owns the machine until ctx is cancelled. No tick is scheduled while
// the machine is outside the playing phase, and none survives Run.
func (r *Runner) Run(ctx context.Context) error {
	period := time.Second / time.Duration(r.tickHz)

	var ticker *time.Ticker
	var tickC <-chan time.Time
	startTicking := func() {
		if ticker == nil {
			ticker = time.NewTicker(period)
			tickC = ticker.C
		}
	}
	stopTicking := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	defer stopTicking()

	if r.machine.Phase() == core.PhasePlaying {
		startTicking()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-r.Inbox:
			if r.handle(cmd) {
				startTicking()
			}
		case <-tickC:
			if r.tick() {
				stopTicking()
			}
		}
	}
}

// handle applies a command. Returns true if a round was started.
func (r *Runner) handle(cmd Command) bool {
	switch cmd {
	case CmdStart:
		if r.machine.Start(r.viewport()) {
			r.logger.Debug("round started", "round", r.machine.Round(), "profile", r.machine.ProfileName())
			return true
		}
	case CmdJump:
		if r.machine.Phase() != core.PhasePlaying {
			return r.handle(CmdStart)
		}
		r.machine.RequestJump()
	}
	return false
}

// tick advances one step. Returns true when the round ended.
func (r *Runner) tick() bool {
	if r.controller != nil {
		if snap, ok := r.machine.Snapshot(); ok && r.controller.Decide(snap) == CmdJump {
			r.machine.RequestJump()
		}
	}

	ended := r.machine.Tick(r.viewport())

	if r.OnFrame != nil {
		if snap, ok := r.machine.Snapshot(); ok {
			r.OnFrame(snap)
		}
	}

	if !ended {
		return false
	}
	res, _ := r.machine.Result()
	r.logger.Info("round ended", "score", res.Score, "frames", res.Frames, "cause", res.Cause)
	if r.OnRoundEnd != nil {
		r.OnRoundEnd(res)
	}
	return true
}
