package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// stillConstants returns test constants with obstacle movement disabled.
func stillConstants() Constants {
	c := Resolve(testViewport, testProfile())
	c.ObstacleSpeed = 0
	return c
}

func TestUpdateCullsPastLeftEdge(t *testing.T) {
	c := stillConstants()

	tests := []struct {
		name   string
		x      float64
		culled bool
	}{
		{"partly visible", -5, false},
		{"trailing edge at zero", -50, false},
		{"fully off screen", -60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(1)
			f.Add(Obstacle{X: tt.x, GapTop: 100})
			f.Update(c, 200)

			obs := f.Obstacles()
			kept := len(obs) > 0 && obs[0].X == tt.x
			if kept == tt.culled {
				t.Errorf("obstacle at x=%v: culled=%v, expected %v", tt.x, !kept, tt.culled)
			}
		})
	}
}

func TestUpdateSpawnPolicy(t *testing.T) {
	c := stillConstants()
	spawnX := c.Viewport.W + c.SpawnLeadIn

	t.Run("empty field spawns", func(t *testing.T) {
		f := NewField(1)
		f.Update(c, 200)
		if f.Len() != 1 || f.Obstacles()[0].X != spawnX {
			t.Fatalf("expected one obstacle at %v, got %+v", spawnX, f.Obstacles())
		}
	})

	t.Run("newest too close waits", func(t *testing.T) {
		f := NewField(1)
		f.Add(Obstacle{X: c.Viewport.W - c.SpawnThreshold, GapTop: 100})
		f.Update(c, 200)
		if f.Len() != 1 {
			t.Errorf("expected no spawn, got %d obstacles", f.Len())
		}
	})

	t.Run("newest far enough spawns at tail", func(t *testing.T) {
		f := NewField(1)
		f.Add(Obstacle{X: 100, GapTop: 100})
		f.Add(Obstacle{X: c.Viewport.W - c.SpawnThreshold - 1, GapTop: 100})
		f.Update(c, 0)
		obs := f.Obstacles()
		if len(obs) != 3 || obs[2].X != spawnX {
			t.Errorf("expected a new tail obstacle at %v, got %+v", spawnX, obs)
		}
	})
}

func TestUpdateAdvancesInSpawnOrder(t *testing.T) {
	c := Resolve(testViewport, testProfile())
	f := NewField(7)
	f.Add(Obstacle{X: 300, GapTop: 100})
	f.Add(Obstacle{X: 600, GapTop: 100})

	f.Update(c, 0)

	obs := f.Obstacles()
	if obs[0].X != 297 || obs[1].X != 597 {
		t.Errorf("obstacles should move left by %v, got %+v", c.ObstacleSpeed, obs)
	}
	for i := 1; i < len(obs); i++ {
		if obs[i].X <= obs[i-1].X {
			t.Errorf("obstacles out of order: %+v", obs)
		}
	}
}

func TestUpdateScoresOncePerObstacle(t *testing.T) {
	c := Resolve(testViewport, testProfile())
	bodyX := 200.0

	tests := []struct {
		name   string
		x      float64
		passed int
	}{
		{"trailing edge clears body", 148, 1},
		{"just clears", 152, 1},
		{"touching is not passing", 153, 0},
		{"still ahead", 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(1)
			f.Add(Obstacle{X: tt.x, GapTop: 100})
			if got := f.Update(c, bodyX); got != tt.passed {
				t.Errorf("passed = %d, expected %d", got, tt.passed)
			}
		})
	}

	f := NewField(1)
	f.Add(Obstacle{X: 148, GapTop: 100})
	total := 0
	for i := 0; i < 100; i++ {
		total += f.Update(c, bodyX)
	}
	if total != 1 {
		t.Errorf("one obstacle scored %d times", total)
	}
}

func TestSpawnedGapStaysInRange(t *testing.T) {
	for _, vp := range []core.Viewport{testViewport, {W: 640, H: 384}, {W: 375, H: 812}} {
		c := Resolve(vp, testProfile())
		lo, hi := GapRange(c)
		f := NewField(99)

		prevLen := 0
		for tick := 0; tick < 5000; tick++ {
			f.Update(c, c.Viewport.W/4)

			if n := f.Len(); n > prevLen+1 {
				t.Fatalf("viewport %+v tick %d: %d obstacles added in one tick", vp, tick, n-prevLen)
			}
			prevLen = f.Len()

			for _, o := range f.Obstacles() {
				if o.GapTop < lo || o.GapTop > hi {
					t.Fatalf("viewport %+v: gapTop %v outside [%v, %v]", vp, o.GapTop, lo, hi)
				}
				if o.GapTop < c.MarginTop || o.GapTop > c.Viewport.H-c.GapHeight-c.MarginBottom {
					t.Fatalf("viewport %+v: gapTop %v breaks margins", vp, o.GapTop)
				}
			}
		}
	}
}

func TestGapRangeDegenerate(t *testing.T) {
	c := Resolve(core.Viewport{W: 100, H: 100}, testProfile())
	c.GapHeight = 200

	lo, hi := GapRange(c)
	if lo != 0 || hi != 0 {
		t.Errorf("GapRange = [%v, %v], expected a single point at 0", lo, hi)
	}

	f := NewField(3)
	f.Update(c, 0)
	if got := f.Obstacles()[0].GapTop; got != 0 {
		t.Errorf("gapTop = %v, expected 0", got)
	}
}

func TestFieldDeterministicForSeed(t *testing.T) {
	c := Resolve(testViewport, testProfile())
	a, b := NewField(42), NewField(42)
	for i := 0; i < 1000; i++ {
		a.Update(c, 200)
		b.Update(c, 200)
	}
	oa, ob := a.Obstacles(), b.Obstacles()
	if len(oa) != len(ob) {
		t.Fatalf("lengths differ: %d vs %d", len(oa), len(ob))
	}
	for i := range oa {
		if oa[i] != ob[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, oa[i], ob[i])
		}
	}
}
