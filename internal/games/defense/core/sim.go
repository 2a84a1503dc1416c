// Package core provides the tower-defense simulation.
// This package is UI-agnostic and deterministic: the same config and seed
// always produce the same game.
package core

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Config describes one game.
type Config struct {
	Width        int
	Height       int
	Start        Coord
	Goal         Coord
	TickInterval time.Duration
	Waves        WaveConfig
	Economy      EconomyConfig
	Towers       []TowerKind
	Seed         int64
}

// DefaultConfig returns the classic 10x10 board routed corner to corner.
func DefaultConfig() Config {
	return Config{
		Width:        10,
		Height:       10,
		Start:        C(0, 0),
		Goal:         C(9, 9),
		TickInterval: time.Second,
		Waves:        DefaultWaveConfig(),
		Economy:      DefaultEconomyConfig(),
		Towers:       DefaultTowerKinds(),
	}
}

// DefaultTowerKinds returns the archer and cannon towers.
func DefaultTowerKinds() []TowerKind {
	return []TowerKind{
		{ID: "archer", Name: "Archer", Glyph: 'A', Cost: 2, BaseDamage: 1, Range: 1.5, AttackInterval: time.Second},
		{ID: "cannon", Name: "Cannon", Glyph: 'C', Cost: 4, BaseDamage: 3, Range: 2.5, AttackInterval: 2 * time.Second},
	}
}

// Simulation owns and wires every game service. It replaces global managers:
// each component receives its collaborators here.
type Simulation struct {
	cfg    Config
	logger *log.Logger

	board    *Board
	clock    *Clock
	roster   *Roster
	director *WaveDirector
	progress *Progress

	towers      []*Tower
	nextTowerID int
	events      []Event
	frame       uint64
	started     bool
}

// New builds a simulation. Board errors are returned; a path anomaly is
// logged and reported as the first step's event. A nil logger discards output.
func New(cfg Config, logger *log.Logger) (*Simulation, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	board, err := NewBoard(cfg.Width, cfg.Height, cfg.Start, cfg.Goal, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, fmt.Errorf("cannot build board: %w", err)
	}
	if cfg.TickInterval <= 0 {
		logger.Warn("tick interval must be positive, using default", "interval", cfg.TickInterval, "default", DefaultTickInterval)
	}

	s := &Simulation{
		cfg:      cfg,
		logger:   logger,
		board:    board,
		clock:    NewClock(cfg.TickInterval),
		roster:   NewRoster(),
		progress: NewProgress(cfg.Economy),
	}
	waveRNG := rand.New(rand.NewSource(cfg.Seed + 1))
	s.director = NewWaveDirector(cfg.Waves, board, s.roster, waveRNG, logger, simListener{s})
	s.director.Attach(s.clock)

	s.notePathError(board.GeneratePath(cfg.Start, cfg.Goal))
	return s, nil
}

// simListener forwards director notifications into the simulation.
type simListener struct {
	s *Simulation
}

func (l simListener) WaveStarted(wave int) {
	s := l.s
	s.emit(Event{Kind: EventWaveStarted, Wave: wave})
	if wave > 1 {
		s.progress.AddMoney(s.cfg.Economy.WaveBonus)
		for _, t := range s.towers {
			t.SetUpgradeEnabled(true)
		}
	}
}

func (l simListener) EnemySpawned(h Handle) {
	s := l.s
	ev := Event{Kind: EventEnemySpawned, Wave: s.director.Wave(), Enemy: h}
	if e, ok := s.roster.Get(h); ok {
		ev.Amount = e.Health
		ev.Detail = e.Variant
	}
	s.emit(ev)
}

func (l simListener) WavesCompleted() {
	s := l.s
	if s.progress.Win() {
		s.logger.Info("all waves cleared", "waves", s.director.Wave(), "score", s.progress.Score())
		s.emit(Event{Kind: EventGameWon, Wave: s.director.Wave()})
	}
}

func (s *Simulation) emit(ev Event) {
	ev.Tick = s.clock.Ticks()
	if ev.Wave == 0 {
		ev.Wave = s.director.Wave()
	}
	s.events = append(s.events, ev)
}

func (s *Simulation) notePathError(err error) {
	if err == nil {
		return
	}
	s.logger.Warn("path generation anomaly", "err", err)
	if errors.Is(err, ErrPathIncomplete) {
		s.emit(Event{Kind: EventPathAnomaly, Coord: s.board.Goal(), Detail: err.Error()})
	}
}

// Start begins the first wave. Calling it again has no effect.
func (s *Simulation) Start() {
	if s.started {
		return
	}
	s.started = true
	s.director.StartNextWave()
}

// Started reports whether Start has been called.
func (s *Simulation) Started() bool {
	return s.started
}

// Step advances the game by dt: clock ticks (spawning), enemy movement, tower
// range sensing, attacks, and finally the sweep of dead and arrived enemies.
// Once the game is over Step only reports the outcome.
func (s *Simulation) Step(dt time.Duration) StepResult {
	if s.progress.Over() {
		return s.result()
	}
	s.frame++
	s.clock.Advance(dt)

	handles := s.roster.Handles()
	for _, h := range handles {
		if e, ok := s.roster.Get(h); ok {
			e.Advance(dt)
		}
	}

	for _, t := range s.towers {
		for _, h := range handles {
			if e, ok := s.roster.Get(h); ok && e.Alive() {
				t.Sense(h, e.Pos)
			}
		}
	}
	for _, t := range s.towers {
		if a, ok := t.Update(dt, s.roster); ok {
			s.emit(Event{Kind: EventTowerAttacked, Tower: a.TowerID, Enemy: a.Target, Amount: a.Damage, Coord: t.Coord})
		}
	}

	s.sweep()
	return s.result()
}

// sweep removes dead and arrived enemies and applies their consequences.
func (s *Simulation) sweep() {
	removed := false
	for _, h := range s.roster.Handles() {
		e, ok := s.roster.Get(h)
		if !ok {
			continue
		}
		switch e.Status() {
		case EnemyDead:
			s.progress.IncrementScore(1)
			s.progress.AddMoney(s.cfg.Economy.KillReward)
			s.emit(Event{Kind: EventEnemyKilled, Enemy: h, Detail: e.Variant})
		case EnemyArrived:
			s.emit(Event{Kind: EventEnemyArrived, Enemy: h, Detail: e.Variant})
			if s.progress.LoseLife(1) {
				s.logger.Info("out of lives", "wave", s.director.Wave(), "score", s.progress.Score())
				s.emit(Event{Kind: EventGameLost})
			}
		default:
			continue
		}
		for _, t := range s.towers {
			t.Forget(h)
		}
		s.roster.Remove(h)
		removed = true
	}
	if removed && !s.progress.Over() {
		s.director.CheckCleared()
	}
}

func (s *Simulation) result() StepResult {
	r := StepResult{
		Frame:   s.frame,
		Tick:    s.clock.Ticks(),
		Events:  s.events,
		Outcome: s.Outcome(),
	}
	s.events = nil
	return r
}

// Outcome returns the current game outcome.
func (s *Simulation) Outcome() Outcome {
	switch {
	case s.progress.Won():
		return OutcomeWon
	case s.progress.Lost():
		return OutcomeLost
	default:
		return OutcomePlaying
	}
}

// StartNextWave asks the director to start the next wave early.
func (s *Simulation) StartNextWave() bool {
	if s.progress.Over() {
		return false
	}
	s.started = true
	return s.director.StartNextWave()
}

// TowerKind looks up a configured tower kind.
func (s *Simulation) TowerKind(id string) (TowerKind, bool) {
	for _, k := range s.cfg.Towers {
		if k.ID == id {
			return k, true
		}
	}
	return TowerKind{}, false
}

// TowerKinds returns the configured tower kinds.
func (s *Simulation) TowerKinds() []TowerKind {
	return slices.Clone(s.cfg.Towers)
}

// PlaceTower builds a tower of the given kind at c and charges its cost.
func (s *Simulation) PlaceTower(kindID string, c Coord) (*Tower, error) {
	if s.progress.Over() {
		return nil, ErrGameOver
	}
	kind, ok := s.TowerKind(kindID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTowerKind, kindID)
	}
	if err := s.board.Place(c); err != nil {
		return nil, err
	}
	if !s.progress.Spend(kind.Cost) {
		_ = s.board.Release(c)
		return nil, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, kind.Name, kind.Cost, s.progress.Money())
	}

	s.nextTowerID++
	t := NewTower(s.nextTowerID, kind, c)
	s.towers = append(s.towers, t)
	s.emit(Event{Kind: EventTowerPlaced, Tower: t.ID, Coord: c, Amount: kind.Cost, Detail: kind.ID})
	return t, nil
}

// UpgradeTower upgrades a tower if upgrades are enabled and affordable, then
// disables upgrades on every tower until the next wave. Returns the money spent.
func (s *Simulation) UpgradeTower(id int) (int, error) {
	if s.progress.Over() {
		return 0, ErrGameOver
	}
	t, ok := s.Tower(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTower, id)
	}
	if !t.UpgradeEnabled() {
		return 0, ErrUpgradeUnavailable
	}
	ok, spent := t.TryUpgrade(s.progress.Money())
	if !ok {
		return 0, fmt.Errorf("%w: upgrade costs %d, have %d", ErrInsufficientFunds, t.UpgradeCost(), s.progress.Money())
	}
	s.progress.SubtractMoney(spent)
	for _, other := range s.towers {
		other.SetUpgradeEnabled(false)
	}
	s.emit(Event{Kind: EventTowerUpgraded, Tower: t.ID, Coord: t.Coord, Amount: spent})
	return spent, nil
}

// RemoveTower demolishes a tower without refund.
func (s *Simulation) RemoveTower(id int) error {
	i := slices.IndexFunc(s.towers, func(t *Tower) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownTower, id)
	}
	t := s.towers[i]
	if err := s.board.Release(t.Coord); err != nil {
		return err
	}
	s.towers = slices.Delete(s.towers, i, i+1)
	s.emit(Event{Kind: EventTowerRemoved, Tower: id, Coord: t.Coord})
	return nil
}

// Tower finds a tower by ID.
func (s *Simulation) Tower(id int) (*Tower, bool) {
	for _, t := range s.towers {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// TowerAt finds the tower standing on c.
func (s *Simulation) TowerAt(c Coord) (*Tower, bool) {
	for _, t := range s.towers {
		if t.Coord == c {
			return t, true
		}
	}
	return nil, false
}

// clearField drops enemies, towers and wave progress.
func (s *Simulation) clearField() {
	s.roster.Clear()
	s.director.Reset()
	s.towers = nil
}

// RegeneratePath clears the field and walks a new route between the same
// endpoints. If the game was running, wave 1 starts again; lives, money and
// score carry over.
func (s *Simulation) RegeneratePath() error {
	s.clearField()
	err := s.board.RegeneratePath()
	s.notePathError(err)
	if s.started && !s.progress.Over() {
		s.director.StartNextWave()
	}
	return err
}

// ResetBoard clears the field and rebuilds the whole grid with a new route.
func (s *Simulation) ResetBoard() error {
	s.clearField()
	err := s.board.Reset()
	s.notePathError(err)
	if s.started && !s.progress.Over() {
		s.director.StartNextWave()
	}
	return err
}

// Restart begins a brand new game on a freshly generated board.
func (s *Simulation) Restart() error {
	s.clearField()
	s.progress.Reset()
	s.clock.Reset()
	s.nextTowerID = 0
	s.frame = 0
	s.events = nil
	s.started = false
	err := s.board.Reset()
	s.notePathError(err)
	s.Start()
	return err
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Board returns the board.
func (s *Simulation) Board() *Board { return s.board }

// Clock returns the tick clock.
func (s *Simulation) Clock() *Clock { return s.clock }

// Director returns the wave director.
func (s *Simulation) Director() *WaveDirector { return s.director }

// Progress returns the lives/money/score tracker.
func (s *Simulation) Progress() *Progress { return s.progress }

// Roster returns the enemy roster.
func (s *Simulation) Roster() *Roster { return s.roster }

// Frame returns the number of steps taken.
func (s *Simulation) Frame() uint64 { return s.frame }

// Towers returns the towers in placement order.
func (s *Simulation) Towers() []*Tower {
	return slices.Clone(s.towers)
}

// Enemies returns copies of all enemies in spawn order.
func (s *Simulation) Enemies() []Enemy {
	out := make([]Enemy, 0, s.roster.Len())
	for _, h := range s.roster.Handles() {
		if e, ok := s.roster.Get(h); ok {
			out = append(out, *e)
		}
	}
	return out
}
