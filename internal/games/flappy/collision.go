package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// EndCause describes why a round ended.
type EndCause int

const (
	CauseNone     EndCause = iota
	CauseBounds            // body left the viewport vertically
	CauseObstacle          // body hit an obstacle
)

// String returns a short name for the cause.
func (e EndCause) String() string {
	switch e {
	case CauseBounds:
		return "out of bounds"
	case CauseObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// Overlaps reports whether the body collides with the obstacle: their
// horizontal ranges intersect and the body is not entirely inside the gap.
// Collision is checked at discrete ticks only, so a fast enough body can
// skip over a thin obstacle between two ticks.
func Overlaps(body core.Rect, o Obstacle, c Constants) bool {
	column := core.NewRect(o.X, 0, c.ObstacleWidth, c.Viewport.H)
	if !body.OverlapsX(column) {
		return false
	}
	return !body.WithinY(o.GapTop, o.GapBottom(c))
}

// OutOfBounds reports whether the body pokes above the top or below the
// bottom of the viewport.
func OutOfBounds(body core.Rect, vp core.Viewport) bool {
	return body.Y < 0 || body.Bottom() > vp.H
}
