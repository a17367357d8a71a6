package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// Built-in profile names.
const (
	ProfileKeyboard = "keyboard"
	ProfileTouch    = "touch"
)

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used if the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		DefaultProfile: ProfileKeyboard,
		Profiles: map[string]Profile{
			ProfileKeyboard: KeyboardProfile(),
			ProfileTouch:    TouchProfile(),
		},
	}
}

// KeyboardProfile is tuned for a desktop window driven by the space bar.
func KeyboardProfile() Profile {
	return Profile{
		Title: "Flappy Bird",
		Scale: Scale{Mode: ScaleFixed, Min: 0.05},
		Physics: Physics{
			Gravity:       0.5,
			JumpImpulse:   8,
			ObstacleSpeed: 3,
		},
		Body: Body{
			SizeDivisor: 15,
			XFraction:   0.1667,
			YFraction:   0.5,
		},
		Obstacles: Obstacles{
			WidthDivisor:   7,
			GapDivisor:     3.5,
			SpawnThreshold: 250,
			SpawnLeadIn:    50,
			MarginTop:      50,
			MarginBottom:   50,
			FirstOffset:    -150,
			FirstGapTop:    200,
		},
	}
}

// TouchProfile uses a larger body and gap for pointer play. Everything scales
// with the shorter viewport side relative to an 80x24 terminal (384px).
func TouchProfile() Profile {
	return Profile{
		Title: "Flappy Bird (touch)",
		Scale: Scale{Mode: ScaleMinSide, Reference: 384, Min: 0.05},
		Physics: Physics{
			Gravity:       0.5,
			JumpImpulse:   8,
			ObstacleSpeed: 2,
		},
		Body: Body{
			SizeDivisor: 12,
			XFraction:   0.1667,
			YFraction:   0.5,
		},
		Obstacles: Obstacles{
			WidthDivisor:   9,
			GapDivisor:     3,
			SpawnThreshold: 150,
			SpawnLeadIn:    50,
			MarginTop:      50,
			MarginBottom:   0,
			FirstOffset:    50,
			FirstGapTop:    120,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `flappy profiles --dump`.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
