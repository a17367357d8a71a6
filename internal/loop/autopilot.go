package loop

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Autopilot is a Controller that steers toward the middle of the next gap.
// Slip is the chance of ignoring a needed jump, which keeps demo rounds from
// running forever.
type Autopilot struct {
	Slip float64
	rng  *rand.Rand
}

// NewAutopilot creates an autopilot with a seeded RNG for its slips.
func NewAutopilot(seed int64, slip float64) *Autopilot {
	return &Autopilot{Slip: slip, rng: rand.New(rand.NewSource(seed))}
}

// Decide returns CmdJump when the body is falling below its target.
func (a *Autopilot) Decide(snap flappy.Snapshot) Command {
	c := snap.Constants
	target := c.Viewport.H / 2
	for _, o := range snap.Obstacles {
		if o.X+c.ObstacleWidth >= snap.Body.X {
			target = o.GapTop + c.GapHeight*0.6
			break
		}
	}

	if snap.Body.Velocity <= 0 || snap.BodyRect.Bottom() < target {
		return CmdNone
	}
	if a.Slip > 0 && a.rng.Float64() < a.Slip {
		return CmdNone
	}
	return CmdJump
}
