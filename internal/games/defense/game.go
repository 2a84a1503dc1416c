// Package defense provides the tower-defense game for the terminal platform.
// The simulation lives in the core subpackage; this package maps platform
// input onto it and draws it into a screen buffer.
package defense

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-defense/internal/config"
	platformcore "github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

// Game implements registry.Game for one board layout.
type Game struct {
	layout     string
	difficulty config.DifficultyPreset // Overrides the package preset when set
	sim        *core.Simulation
	failed     error // Set when the config or board could not be built

	runtime platformcore.RuntimeConfig
	dt      time.Duration
	seed    int64

	// Player state
	cursor  core.Coord
	kind    int // Index into the tower kinds
	paused  bool
	kills   int
	message string
}

func init() {
	registry.Register("defense", func() registry.Game {
		return New("classic")
	})
	registry.Register("defense_wide", func() registry.Game {
		return New("wide")
	})
}

// New creates a game for the named layout. Config is loaded on Reset.
func New(layout string) *Game {
	return &Game{layout: layout}
}

// SetDifficulty selects a preset for this game only, taking effect on the next Reset.
// Unknown names are ignored.
func (g *Game) SetDifficulty(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		logger.Warn("ignoring difficulty preset", "game", g.ID(), "err", err)
		return
	}
	g.difficulty = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.layout == "" || g.layout == "classic" {
		return "defense"
	}
	return "defense_" + g.layout
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.layout == "" || g.layout == "classic" {
		return "Tower Defense"
	}
	return fmt.Sprintf("Tower Defense (%s)", g.layout)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = platformcore.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.dt = time.Second / time.Duration(runtime.TickRate)
	g.seed = runtime.Seed
	g.kind = 0
	g.paused = false
	g.kills = 0
	g.message = "Build towers, then press N to send the first wave"
	g.failed = nil
	g.sim = nil

	sim, err := NewSimulation(g.layout, g.difficulty, runtime.Seed, logger.With("game", g.ID()))
	if err != nil {
		logger.Error("cannot start defense game", "layout", g.layout, "err", err)
		g.fail(err)
		return
	}
	g.sim = sim
	g.cursor = core.C(sim.Board().W/2, sim.Board().H/2)
	logger.Debug("game reset", "layout", g.layout, "seed", runtime.Seed, "path", sim.Board().PathLen())
}

func (g *Game) fail(err error) {
	g.failed = err
	g.message = err.Error()
}

// Step advances the game by one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.sim == nil || g.sim.Outcome() != core.OutcomePlaying {
		return platformcore.StepResult{State: g.State(), Message: g.message}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State(), Message: g.message}
	}

	g.handleInput(in)

	res := g.sim.Step(g.dt)
	for _, ev := range res.Events {
		g.note(ev)
	}
	switch res.Outcome {
	case core.OutcomeWon:
		g.message = "All waves cleared!"
	case core.OutcomeLost:
		g.message = "Out of lives"
	}
	return platformcore.StepResult{State: g.State(), Message: g.message}
}

// handleInput applies cursor movement and player commands.
func (g *Game) handleInput(in platformcore.InputFrame) {
	b := g.sim.Board()
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Y--
	case in.Has(platformcore.ActionDown):
		g.cursor.Y++
	case in.Has(platformcore.ActionLeft):
		g.cursor.X--
	case in.Has(platformcore.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = platformcore.Clamp(g.cursor.X, 0, b.W-1)
	g.cursor.Y = platformcore.Clamp(g.cursor.Y, 0, b.H-1)

	kinds := g.sim.TowerKinds()
	if in.Has(platformcore.ActionCycle) && len(kinds) > 0 {
		g.kind = (g.kind + 1) % len(kinds)
		k := kinds[g.kind]
		g.message = fmt.Sprintf("Selected %s ($%d)", k.Name, k.Cost)
	}

	switch {
	case in.Has(platformcore.ActionPlace) && len(kinds) > 0:
		k := kinds[g.kind]
		if _, err := g.sim.PlaceTower(k.ID, g.cursor); err != nil {
			g.message = describe(err)
		} else {
			g.message = fmt.Sprintf("Built %s for $%d", k.Name, k.Cost)
		}
	case in.Has(platformcore.ActionUpgrade):
		t, ok := g.sim.TowerAt(g.cursor)
		if !ok {
			g.message = "No tower here"
			break
		}
		if spent, err := g.sim.UpgradeTower(t.ID); err != nil {
			g.message = describe(err)
		} else {
			g.message = fmt.Sprintf("%s upgraded to level %d for $%d", t.Kind.Name, t.Level(), spent)
		}
	case in.Has(platformcore.ActionSell):
		t, ok := g.sim.TowerAt(g.cursor)
		if !ok {
			g.message = "No tower here"
			break
		}
		if err := g.sim.RemoveTower(t.ID); err != nil {
			g.message = describe(err)
		} else {
			g.message = fmt.Sprintf("%s demolished", t.Kind.Name)
		}
	case in.Has(platformcore.ActionNextWave):
		if d := g.sim.Director(); !g.sim.StartNextWave() {
			if d.Wave() >= d.MaxWaves() {
				g.message = "This is the final wave"
			} else {
				g.message = "A wave is already on its way"
			}
		}
	case in.Has(platformcore.ActionRegenerate):
		if err := g.sim.RegeneratePath(); err != nil {
			g.message = describe(err)
		} else {
			g.message = "New path generated"
		}
	}
}

// note turns simulation events into the status line and counters.
func (g *Game) note(ev core.Event) {
	switch ev.Kind {
	case core.EventEnemyKilled:
		g.kills++
	case core.EventWaveStarted:
		g.message = fmt.Sprintf("Wave %d of %d incoming", ev.Wave, g.sim.Director().MaxWaves())
	case core.EventEnemyArrived:
		g.message = "An enemy reached the goal!"
	case core.EventPathAnomaly:
		g.message = "The path could not reach the goal"
	}
}

// describe maps simulation errors to status messages.
func describe(err error) string {
	switch {
	case errors.Is(err, core.ErrInsufficientFunds):
		return "Not enough money"
	case errors.Is(err, core.ErrUpgradeUnavailable):
		return "Upgrades unlock at the next wave"
	case errors.Is(err, core.ErrNotBuildable):
		return "Cannot build here"
	case errors.Is(err, core.ErrOccupied):
		return "A tower already stands here"
	case errors.Is(err, core.ErrPathIncomplete):
		return "The path could not reach the goal"
	case errors.Is(err, core.ErrGameOver):
		return "The game is over"
	default:
		return err.Error()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.sim == nil {
		return platformcore.GameState{GameOver: g.failed != nil}
	}
	p := g.sim.Progress()
	return platformcore.GameState{
		Score:    p.Score(),
		GameOver: p.Over(),
		Won:      p.Won(),
		Paused:   g.paused,
		Stage:    g.sim.Director().Wave(),
		Lives:    p.Lives(),
		Money:    p.Money(),
	}
}

// RunSummary describes the current run for the history table.
func (g *Game) RunSummary() platformcore.RunSummary {
	s := platformcore.RunSummary{Outcome: "quit", Seed: g.seed, Layout: g.layout, Kills: g.kills}
	if g.sim == nil {
		return s
	}
	if o := g.sim.Outcome(); o != core.OutcomePlaying {
		s.Outcome = o.String()
	}
	s.Wave = g.sim.Director().Wave()
	s.LivesLeft = g.sim.Progress().Lives()
	s.MoneyLeft = g.sim.Progress().Money()
	return s
}

// Simulation exposes the underlying simulation, nil when Reset failed.
func (g *Game) Simulation() *core.Simulation {
	return g.sim
}

// Cursor returns the board cell under the cursor.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Message returns the current status line.
func (g *Game) Message() string {
	return g.message
}
