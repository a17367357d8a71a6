package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the top-level state of a game: menu, playing or ended.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseEnded
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase Phase // Current phase
	Score int   // Current (or final) score
	Round int   // Number of rounds started so far
}

// GameOver reports whether the last round has ended.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseEnded
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// RoundEnded is set on the single tick where playing turned into ended.
	RoundEnded bool
}
