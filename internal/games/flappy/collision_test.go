package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestOverlaps(t *testing.T) {
	c := Resolve(testViewport, testProfile())
	o := Obstacle{X: 100, GapTop: 120}

	tests := []struct {
		name string
		body core.Rect
		want bool
	}{
		{"inside gap", core.NewRect(120, 200, 20, 20), false},
		{"flush with gap top", core.NewRect(120, 120, 20, 20), false},
		{"flush with gap bottom", core.NewRect(120, 300, 20, 20), false},
		{"clips top segment", core.NewRect(120, 110, 20, 20), true},
		{"clips bottom segment", core.NewRect(120, 310, 20, 20), true},
		{"inside top segment", core.NewRect(120, 10, 20, 20), true},
		{"leading edge touches", core.NewRect(80, 10, 20, 20), false},
		{"trailing edge touches", core.NewRect(150, 10, 20, 20), false},
		{"leading edge overlaps", core.NewRect(81, 10, 20, 20), true},
		{"trailing edge overlaps", core.NewRect(149, 400, 20, 20), true},
		{"far away", core.NewRect(400, 0, 20, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.body, o, c); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, expected %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestOverlapsSafePassage(t *testing.T) {
	c := Resolve(testViewport, testProfile())
	if c.GapHeight != 200 {
		t.Fatalf("fixture gap = %v, expected 200", c.GapHeight)
	}
	o := Obstacle{X: 190, GapTop: 120}

	// Body spans [120, 320] exactly and overlaps the column horizontally.
	body := core.NewRect(200, 120, 200, 200)
	if !body.OverlapsX(o.TopRect(c)) {
		t.Fatal("fixture should overlap horizontally")
	}
	if Overlaps(body, o, c) {
		t.Error("body fully inside the gap should pass safely")
	}
}

func TestOutOfBounds(t *testing.T) {
	vp := core.Viewport{W: 800, H: 600}

	tests := []struct {
		name string
		body core.Rect
		want bool
	}{
		{"middle", core.NewRect(10, 300, 20, 20), false},
		{"top edge", core.NewRect(10, 0, 20, 20), false},
		{"bottom edge", core.NewRect(10, 580, 20, 20), false},
		{"above", core.NewRect(10, -0.1, 20, 20), true},
		{"below", core.NewRect(10, 580.1, 20, 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutOfBounds(tt.body, vp); got != tt.want {
				t.Errorf("OutOfBounds(%+v) = %v, expected %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestFieldCollides(t *testing.T) {
	c := Resolve(testViewport, testProfile())
	f := NewField(1)
	f.Add(Obstacle{X: 100, GapTop: 120})
	f.Add(Obstacle{X: 400, GapTop: 300})

	if f.Collides(core.NewRect(120, 200, 20, 20), c) {
		t.Error("body in the first gap should not collide")
	}
	if !f.Collides(core.NewRect(410, 200, 20, 20), c) {
		t.Error("body above the second gap should collide")
	}
}
