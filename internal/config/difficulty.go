package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetTuning holds the multipliers a preset applies to a profile.
type presetTuning struct {
	speed float64 // obstacle speed multiplier
	gap   float64 // gap divisor multiplier (>1 shrinks the gap)
}

var presetTunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {speed: 0.8, gap: 0.85},
	DifficultyNormal: {speed: 1.0, gap: 1.0},
	DifficultyHard:   {speed: 1.25, gap: 1.15},
}

// ParseDifficulty converts a CLI string into a preset.
// An empty string means "use the profile as configured".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	preset := DifficultyPreset(s)
	if _, ok := presetTunings[preset]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return preset, nil
}

// ApplyDifficulty modifies the profile based on a difficulty preset.
// An empty or unknown preset leaves the profile untouched.
func ApplyDifficulty(p *Profile, preset DifficultyPreset) {
	tuning, ok := presetTunings[preset]
	if !ok {
		return
	}
	p.Physics.ObstacleSpeed *= tuning.speed
	p.Obstacles.GapDivisor *= tuning.gap
}
