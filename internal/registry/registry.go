// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
)

// Game is the interface every playable mode implements.
// Games contain pure logic with no terminal dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "jaimp").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the session.
	// The RuntimeConfig provides the tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Update advances the simulation by dt seconds.
	// Input is abstracted to platform-level actions (Jump, Crouch, etc.).
	Update(in core.InputFrame, dt float64) core.StepResult

	// Render draws the current frame onto the canvas in world units
	// of the configured viewport.
	Render(dst core.Canvas)

	// State returns the current session state.
	State() core.GameState
}

// Env carries the collaborators a mode is built with.
// Zero values are valid: a nil Config means built-in defaults,
// a nil Audio means silence and a nil Logger discards output.
type Env struct {
	Config *config.JaimpConfig
	Audio  core.AudioSink
	Logger *log.Logger
}

// Resolve fills unset fields with their defaults.
func (e Env) Resolve() Env {
	if e.Config == nil {
		cfg := config.DefaultJaimpConfig()
		e.Config = &cfg
	}
	if e.Audio == nil {
		e.Audio = core.NopAudio{}
	}
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a mode.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a game's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new mode by its ID.
// Returns an error if the ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(env.Resolve()), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
