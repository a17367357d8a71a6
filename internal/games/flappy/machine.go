package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RoundResult is the outcome of a finished round.
type RoundResult struct {
	Profile string
	Score   int
	Frames  uint64
	Cause   EndCause
}

// Machine is the menu/playing/ended state machine. It owns the active
// Simulation; external code mutates it only through RequestStart,
// RequestJump and Tick, which must be called from one goroutine.
type Machine struct {
	name    string
	profile config.Profile
	seed    int64
	onEnd   func(RoundResult)

	phase Phase
	round int
	sim   *Simulation

	startQueued bool
	result      RoundResult
	final       Snapshot
}

// Phase aliases core.Phase so callers of this package need not import core.
type Phase = core.Phase

// Option configures a Machine.
type Option func(*Machine)

// WithSeed sets the base RNG seed. Round n uses seed+n so every round of a
// seeded machine is reproducible.
func WithSeed(seed int64) Option {
	return func(m *Machine) { m.seed = seed }
}

// WithRoundEndHook registers a callback run synchronously when a round ends.
func WithRoundEndHook(fn func(RoundResult)) Option {
	return func(m *Machine) { m.onEnd = fn }
}

// NewMachine creates a machine in the menu phase for the named profile.
func NewMachine(name string, p config.Profile, opts ...Option) *Machine {
	m := &Machine{name: name, profile: p, phase: core.PhaseMenu}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins a new round immediately. Valid from menu or ended; any
// previous simulation is discarded. Returns false if the call was ignored.
func (m *Machine) Start(vp core.Viewport) bool {
	if m.phase == core.PhasePlaying {
		return false
	}
	m.round++
	m.sim = NewSimulation(m.profile, vp, m.seed+int64(m.round))
	m.phase = core.PhasePlaying
	m.startQueued = false
	m.result = RoundResult{}
	return true
}

// RequestStart queues a start for the next tick. Ignored while playing.
func (m *Machine) RequestStart() {
	if m.phase != core.PhasePlaying {
		m.startQueued = true
	}
}

// RequestJump queues a jump for the next tick. Ignored unless playing.
func (m *Machine) RequestJump() {
	if m.phase == core.PhasePlaying && m.sim != nil {
		m.sim.QueueJump()
	}
}

// Tick applies queued commands and advances the round by one step. A
// queued start only creates the round; the first simulation step happens
// on the following tick. Returns true on the tick the round ended.
func (m *Machine) Tick(vp core.Viewport) bool {
	if m.startQueued {
		m.Start(vp)
		return false
	}
	if m.phase != core.PhasePlaying {
		return false
	}

	res := m.sim.Tick(vp)
	if !res.Terminal {
		return false
	}

	m.final = m.sim.Snapshot()
	m.result = RoundResult{
		Profile: m.name,
		Score:   m.sim.Score(),
		Frames:  m.sim.Frame(),
		Cause:   res.Cause,
	}
	m.sim = nil
	m.phase = core.PhaseEnded
	if m.onEnd != nil {
		m.onEnd(m.result)
	}
	return true
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Round returns the number of rounds started.
func (m *Machine) Round() int { return m.round }

// ProfileName returns the profile this machine was created for.
func (m *Machine) ProfileName() string { return m.name }

// Profile returns the tuning this machine runs with.
func (m *Machine) Profile() config.Profile { return m.profile }

// Score returns the live score while playing, the final score once ended
// and 0 in the menu.
func (m *Machine) Score() int {
	switch {
	case m.sim != nil:
		return m.sim.Score()
	case m.phase == core.PhaseEnded:
		return m.result.Score
	default:
		return 0
	}
}

// Snapshot returns the state to draw. Once a round has ended it returns
// the final frame of that round. ok is false before the first round.
func (m *Machine) Snapshot() (snap Snapshot, ok bool) {
	switch {
	case m.sim != nil:
		return m.sim.Snapshot(), true
	case m.phase == core.PhaseEnded:
		return m.final, true
	default:
		return Snapshot{}, false
	}
}

// Result returns the last round's result. ok is false unless ended.
func (m *Machine) Result() (RoundResult, bool) {
	return m.result, m.phase == core.PhaseEnded
}

// State returns the platform-level view of the machine.
func (m *Machine) State() core.GameState {
	return core.GameState{Phase: m.phase, Score: m.Score(), Round: m.round}
}
