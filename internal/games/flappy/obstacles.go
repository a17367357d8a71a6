package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a vertical barrier with a passable gap.
type Obstacle struct {
	X      float64 // Horizontal position (leading/left edge)
	GapTop float64 // Y position where the gap starts
	Passed bool    // Whether the body has passed this obstacle (for scoring)
}

// TopRect returns the collision rectangle above the gap.
func (o Obstacle) TopRect(c Constants) core.Rect {
	return core.NewRect(o.X, 0, c.ObstacleWidth, o.GapTop)
}

// BottomRect returns the collision rectangle below the gap, down to the floor.
func (o Obstacle) BottomRect(c Constants) core.Rect {
	bottomY := o.GapTop + c.GapHeight
	return core.NewRect(o.X, bottomY, c.ObstacleWidth, c.Viewport.H-bottomY)
}

// GapBottom returns the y coordinate where the gap ends.
func (o Obstacle) GapBottom(c Constants) float64 {
	return o.GapTop + c.GapHeight
}

// Field owns the obstacle sequence. Obstacles are kept oldest first; new
// ones are appended at the tail.
type Field struct {
	obstacles []Obstacle
	rng       *rand.Rand
}

// NewField creates an empty field with the given RNG seed.
func NewField(seed int64) *Field {
	return &Field{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Add appends an obstacle at the tail. Used to seed a round.
func (f *Field) Add(o Obstacle) {
	f.obstacles = append(f.obstacles, o)
}

// Update advances all obstacles, credits the ones the body has passed,
// culls the ones that left the screen and spawns at most one new obstacle.
// Returns the number of obstacles passed this tick.
func (f *Field) Update(c Constants, bodyX float64) int {
	passed := 0

	// Pass 1: advance and score. Nothing is removed while iterating.
	for i := range f.obstacles {
		o := &f.obstacles[i]
		o.X -= c.ObstacleSpeed
		if !o.Passed && o.X+c.ObstacleWidth < bodyX {
			o.Passed = true
			passed++
		}
	}

	// Pass 2: keep only obstacles whose trailing edge is still on screen.
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X >= -c.ObstacleWidth {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept

	if f.shouldSpawn(c) {
		f.Add(Obstacle{
			X:      c.Viewport.W + c.SpawnLeadIn,
			GapTop: f.randomGapTop(c),
		})
	}

	return passed
}

// shouldSpawn reports whether the newest obstacle has moved far enough in.
func (f *Field) shouldSpawn(c Constants) bool {
	if len(f.obstacles) == 0 {
		return true
	}
	newest := f.obstacles[len(f.obstacles)-1]
	return newest.X < c.Viewport.W-c.SpawnThreshold
}

// randomGapTop draws a gap position uniformly from the valid range.
func (f *Field) randomGapTop(c Constants) float64 {
	lo, hi := GapRange(c)
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Float64()*(hi-lo)
}

// GapRange returns the interval a gap top may be drawn from so the whole gap
// stays on screen. For viewports too small to fit the margins the range
// collapses to a single point clamped into the viewport.
func GapRange(c Constants) (lo, hi float64) {
	lo = c.MarginTop
	hi = c.Viewport.H - c.GapHeight - c.MarginBottom
	if hi < lo {
		lo = core.ClampF(lo, 0, max(c.Viewport.H-c.GapHeight, 0))
		hi = lo
	}
	return lo, hi
}

// Collides reports whether the body hits any obstacle in the field.
func (f *Field) Collides(body core.Rect, c Constants) bool {
	for _, o := range f.obstacles {
		if Overlaps(body, o, c) {
			return true
		}
	}
	return false
}

// Obstacles returns the current obstacles, oldest first.
// The slice must not be modified by the caller.
func (f *Field) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of live obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}
