// Package registry maps board IDs to game factories.
//
// Each tower-defense layout ("defense" for the classic 10x10 board,
// "defense_wide" for the 24x12 one) registers itself from init(). The menu,
// the SSH server and the CLI only know boards through this package, and the
// board ID doubles as the key for high scores and run history.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-defense/internal/core"
)

// Game is one playable board wrapped around a simulation.
// Implementations never import Bubble Tea; the platform owns input mapping,
// frame timing and terminal output.
type Game interface {
	// ID is the board key, e.g. "defense" or "defense_wide".
	ID() string

	// Title is shown in the menu and on the scoreboard.
	Title() string

	// Reset builds a fresh simulation for the board from the RNG seed in cfg.
	// Called at start and on restart after a win or loss.
	Reset(cfg core.RuntimeConfig)

	// Step applies the frame's actions (cursor, place, upgrade, next wave)
	// and advances the simulation by 1/TickRate seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board, towers, enemies and HUD into a cleared screen.
	Render(dst *core.Screen)

	// State reports wave, lives, money and score for the platform.
	State() core.GameState
}

// Reporter is implemented by boards that can describe a run for the
// history table: layout, seed, outcome and wave reached.
type Reporter interface {
	RunSummary() core.RunSummary
}

// GameInfo describes a registered board.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new, unstarted board.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a board factory under id.
// Panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: board %q already registered", id))
	}

	factories[id] = f

	// Boards are cheap to build until Reset, so ask one for its title
	g := f()
	titles[id] = g.Title()
}

// List returns every registered board, sorted by ID.
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

// Create builds a new board by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown board %q", id)
	}

	return f(), nil
}

// Exists reports whether a board is registered under id.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
