// Package config provides YAML-based game configuration loading,
// input profiles and difficulty presets for the flappy platform.
package config

import (
	"fmt"
	"sort"
)

// FlappyConfig contains all configuration for the game.
// Each profile is a complete tuning of the same simulation; the keyboard and
// touch profiles replace what used to be two separate game variants.
type FlappyConfig struct {
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile is one named tuning of the simulation.
type Profile struct {
	Title     string    `yaml:"title"`
	Scale     Scale     `yaml:"scale"`
	Physics   Physics   `yaml:"physics"`
	Body      Body      `yaml:"body"`
	Obstacles Obstacles `yaml:"obstacles"`
}

// ScaleMode selects how the viewport maps to the scale multiplier.
type ScaleMode string

const (
	ScaleFixed   ScaleMode = "fixed"    // scale is always 1
	ScaleWidth   ScaleMode = "width"    // scale = width / reference
	ScaleMinSide ScaleMode = "min_side" // scale = min(width, height) / reference
)

// Scale defines how the scale multiplier is derived from the viewport.
type Scale struct {
	Mode      ScaleMode `yaml:"mode"`
	Reference float64   `yaml:"reference"` // Reference width or divisor, unused for fixed
	Min       float64   `yaml:"min"`       // Lower bound for degenerate viewports
}

// Physics defines per-tick physics parameters. All values are multiplied by
// the resolved scale.
type Physics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Magnitude; a jump sets velocity to -impulse
	MaxFallSpeed  float64 `yaml:"max_fall_speed"` // 0 disables the clamp
	ObstacleSpeed float64 `yaml:"obstacle_speed"`
}

// Body defines the controlled body's size and spawn point.
type Body struct {
	SizeDivisor float64 `yaml:"size_divisor"` // size = min(w, h) / divisor * scale
	XFraction   float64 `yaml:"x_fraction"`   // spawn x = width * fraction
	YFraction   float64 `yaml:"y_fraction"`   // spawn y = height * fraction
}

// Obstacles defines obstacle geometry and the spawn policy.
type Obstacles struct {
	WidthDivisor   float64 `yaml:"width_divisor"`   // width = min(w, h) / divisor * scale
	GapDivisor     float64 `yaml:"gap_divisor"`     // gap = min(w, h) / divisor * scale
	SpawnThreshold float64 `yaml:"spawn_threshold"` // spawn once the newest obstacle is this far from the right edge
	SpawnLeadIn    float64 `yaml:"spawn_lead_in"`   // new obstacles appear this far past the right edge
	MarginTop      float64 `yaml:"margin_top"`      // minimum gap top, unscaled
	MarginBottom   float64 `yaml:"margin_bottom"`   // minimum space below the gap, unscaled
	FirstOffset    float64 `yaml:"first_offset"`    // first obstacle x = width + offset
	FirstGapTop    float64 `yaml:"first_gap_top"`   // first obstacle gap top, scaled
}

// Profile returns the named profile, or the default profile if name is empty.
func (c FlappyConfig) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("config: unknown profile %q", name)
	}
	return p, nil
}

// ProfileNames returns all profile names, sorted.
func (c FlappyConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
