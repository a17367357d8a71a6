// Package registry provides a global registry for game factories.
// Factories are registered once per configured profile at startup, allowing
// the platform to list and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the identifier scores are stored under (e.g., "flappy").
	// Several registered profiles may share one ID.
	ID() string

	// Profile returns the registry key this instance was created from.
	Profile() string

	// Title returns a human-readable name for display (e.g., "Flappy Bird").
	Title() string

	// Reset initializes the game and returns it to its menu.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Resize changes the screen size without restarting anything.
	Resize(w, h int)

	// Step advances the simulation by one tick.
	// Input is abstracted to platform-level actions (Jump, Start, etc.).
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	Key   string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry under key.
// Panics if the key is already registered.
func Register(key string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[key]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", key))
	}

	factories[key] = f

	// Get title by creating a temporary instance
	g := f()
	titles[key] = g.Title()
}

// List returns information about all registered games, sorted by key.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for key := range factories {
		result = append(result, GameInfo{
			Key:   key,
			Title: titles[key],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Create instantiates a new game by its key.
// Returns an error if the key is not registered.
func Create(key string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", key)
	}

	return f(), nil
}

// Exists checks if a game with the given key is registered.
func Exists(key string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[key]
	return ok
}
