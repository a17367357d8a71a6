package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Simulation is the state of one round. It is created fresh by Machine.Start
// and dropped when the round ends; it is never reused.
type Simulation struct {
	profile config.Profile
	field   *Field
	body    Body
	score   int
	frame   uint64

	jumpQueued bool
	last       Constants
}

// TickResult reports what happened during one tick.
type TickResult struct {
	Passed   int      // Obstacles credited this tick
	Terminal bool     // The round ended this tick
	Cause    EndCause // Why the round ended
}

// Snapshot is a read-only copy of the simulation for rendering.
type Snapshot struct {
	Body      Body
	BodyRect  core.Rect
	Obstacles []Obstacle
	Score     int
	Frame     uint64
	Constants Constants
}

// NewSimulation creates a round for the given viewport. The body spawns at
// the profile's fractional position and one obstacle is seeded.
func NewSimulation(p config.Profile, vp core.Viewport, seed int64) *Simulation {
	c := Resolve(vp, p)
	s := &Simulation{
		profile: p,
		field:   NewField(seed),
		body: Body{
			X: c.Viewport.W * p.Body.XFraction,
			Y: c.Viewport.H * p.Body.YFraction,
		},
		last: c,
	}
	s.field.Add(Obstacle{
		X:      c.Viewport.W + p.Obstacles.FirstOffset,
		GapTop: firstGapTop(c, p),
	})
	return s
}

// firstGapTop scales the configured first gap and keeps the gap on screen.
func firstGapTop(c Constants, p config.Profile) float64 {
	lo, hi := GapRange(c)
	return core.ClampF(p.Obstacles.FirstGapTop*c.Scale, lo, hi)
}

// QueueJump records a jump to be applied at the start of the next tick.
func (s *Simulation) QueueJump() {
	s.jumpQueued = true
}

// Tick advances the round by one step for the current viewport:
// physics, then obstacles and scoring, then collision.
func (s *Simulation) Tick(vp core.Viewport) TickResult {
	c := Resolve(vp, s.profile)
	s.last = c

	if s.jumpQueued {
		s.body = Jump(s.body, c.JumpImpulse)
		s.jumpQueued = false
	}
	s.body = Step(s.body, c.Gravity, c.MaxFallSpeed)
	s.frame++

	res := TickResult{Passed: s.field.Update(c, s.body.X)}
	s.score += res.Passed

	rect := s.body.Rect(c.BodySize)
	switch {
	case OutOfBounds(rect, c.Viewport):
		res.Terminal, res.Cause = true, CauseBounds
	case s.field.Collides(rect, c):
		res.Terminal, res.Cause = true, CauseObstacle
	}
	return res
}

// Score returns the number of obstacles passed this round.
func (s *Simulation) Score() int { return s.score }

// Frame returns the number of ticks simulated this round.
func (s *Simulation) Frame() uint64 { return s.frame }

// Body returns the current body state.
func (s *Simulation) Body() Body { return s.body }

// Snapshot returns a copy of the state as of the last tick (or creation).
func (s *Simulation) Snapshot() Snapshot {
	obs := s.field.Obstacles()
	cp := make([]Obstacle, len(obs))
	copy(cp, obs)
	return Snapshot{
		Body:      s.body,
		BodyRect:  s.body.Rect(s.last.BodySize),
		Obstacles: cp,
		Score:     s.score,
		Frame:     s.frame,
		Constants: s.last,
	}
}
