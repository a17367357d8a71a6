package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	// minViewportSide keeps a collapsed viewport from producing zero or
	// non-finite constants.
	minViewportSide = 1.0

	// defaultMinScale is used when a profile does not set scale.min.
	defaultMinScale = 0.05
)

// Constants are all size and speed values for one tick, derived from the
// viewport and a profile. They are never cached across ticks.
type Constants struct {
	Viewport core.Viewport
	Scale    float64

	BodySize       float64
	ObstacleWidth  float64
	GapHeight      float64
	Gravity        float64
	ObstacleSpeed  float64
	JumpImpulse    float64
	MaxFallSpeed   float64 // 0 = unbounded
	SpawnThreshold float64
	SpawnLeadIn    float64
	MarginTop      float64
	MarginBottom   float64
}

// Resolve derives the per-tick constants for the given viewport.
// It is a pure function: the same viewport and profile always yield the same result.
func Resolve(vp core.Viewport, p config.Profile) Constants {
	vp = sanitizeViewport(vp)
	scale := resolveScale(vp, p.Scale)
	side := vp.MinSide()

	c := Constants{
		Viewport:      vp,
		Scale:         scale,
		BodySize:      side / p.Body.SizeDivisor * scale,
		ObstacleWidth: side / p.Obstacles.WidthDivisor * scale,
		GapHeight:     side / p.Obstacles.GapDivisor * scale,
		Gravity:       p.Physics.Gravity * scale,
		ObstacleSpeed: p.Physics.ObstacleSpeed * scale,
		JumpImpulse:   p.Physics.JumpImpulse * scale,
		MaxFallSpeed:  p.Physics.MaxFallSpeed * scale,
		SpawnLeadIn:   p.Obstacles.SpawnLeadIn,
		MarginTop:     p.Obstacles.MarginTop,
		MarginBottom:  p.Obstacles.MarginBottom,
	}

	// A gap taller than the space between the margins would leave no valid
	// gap top. Viewports too small to fit the margins at all are left to GapRange.
	if maxGap := vp.H - c.MarginTop - c.MarginBottom - c.BodySize; maxGap > 0 && c.GapHeight > maxGap {
		c.GapHeight = maxGap
	}

	// Spacing scales with speed so the number of ticks between spawns stays
	// the same on every screen; two widths keeps neighbours from touching.
	c.SpawnThreshold = math.Max(p.Obstacles.SpawnThreshold*scale, 2*c.ObstacleWidth)

	return c
}

// sanitizeViewport clamps non-finite or tiny dimensions.
func sanitizeViewport(vp core.Viewport) core.Viewport {
	if !core.Finite(vp.W) || vp.W < minViewportSide {
		vp.W = minViewportSide
	}
	if !core.Finite(vp.H) || vp.H < minViewportSide {
		vp.H = minViewportSide
	}
	return vp
}

// resolveScale computes the scale multiplier for a sanitized viewport.
func resolveScale(vp core.Viewport, s config.Scale) float64 {
	minScale := s.Min
	if minScale <= 0 {
		minScale = defaultMinScale
	}

	scale := 1.0
	switch s.Mode {
	case config.ScaleWidth:
		scale = vp.W / s.Reference
	case config.ScaleMinSide:
		scale = vp.MinSide() / s.Reference
	}

	if !core.Finite(scale) || scale < minScale {
		return minScale
	}
	return scale
}
