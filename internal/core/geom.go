// Package core provides fundamental types and utilities for the flappy platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in viewport pixels.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// OverlapsX reports whether the horizontal ranges of r and other intersect.
// Touching edges do not count as overlap.
func (r Rect) OverlapsX(other Rect) bool {
	return r.Right() > other.X && r.X < other.Right()
}

// OverlapsY reports whether the vertical ranges of r and other intersect.
func (r Rect) OverlapsY(other Rect) bool {
	return r.Bottom() > other.Y && r.Y < other.Bottom()
}

// WithinY reports whether r lies vertically inside [top, bottom], edges inclusive.
func (r Rect) WithinY(top, bottom float64) bool {
	return r.Y >= top && r.Bottom() <= bottom
}

// Viewport is the drawable area the simulation runs in, in pixels.
type Viewport struct {
	W, H float64
}

// MinSide returns the shorter of the two viewport dimensions.
func (v Viewport) MinSide() float64 {
	return math.Min(v.W, v.H)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
