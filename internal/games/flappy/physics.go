package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Body is the player-controlled entity. X is fixed for the whole round;
// only Y and Velocity change. Positive velocity points down.
type Body struct {
	X, Y     float64
	Velocity float64
}

// Rect returns the body's bounding box for the given size.
func (b Body) Rect(size float64) core.Rect {
	return core.NewRect(b.X, b.Y, size, size)
}

// Step integrates one tick: gravity is added to velocity before the
// position moves. maxFall <= 0 leaves the fall speed unbounded.
func Step(b Body, gravity, maxFall float64) Body {
	b.Velocity += gravity
	if maxFall > 0 && b.Velocity > maxFall {
		b.Velocity = maxFall
	}
	b.Y += b.Velocity
	return b
}

// Jump replaces the current velocity with an upward impulse, whatever the
// body was doing before.
func Jump(b Body, impulse float64) Body {
	b.Velocity = -impulse
	return b
}
