package core

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// WaveState is the director's lifecycle state.
type WaveState uint8

const (
	WaveIdle     WaveState = iota // Between waves, or a wave's spawns are all out
	WaveSpawning                  // Emitting one enemy per tick
	WaveComplete                  // Final wave cleared; terminal
)

// String returns the string representation of the wave state.
func (s WaveState) String() string {
	switch s {
	case WaveIdle:
		return "Idle"
	case WaveSpawning:
		return "Spawning"
	case WaveComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// EnemyVariant is one enemy type the director can spawn.
type EnemyVariant struct {
	ID     string
	Glyph  rune
	Weight float64 // Relative spawn weight
}

// WaveConfig controls wave pacing and scaling.
type WaveConfig struct {
	MaxWaves     int
	BaseHealth   int
	BaseSpeed    float64 // Cells per second at wave 1
	ScalePerWave float64 // Added to the stat multiplier per wave after the first
	Variants     []EnemyVariant
}

// DefaultWaveConfig returns five waves of 80/20 grunts and runners.
func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		MaxWaves:     5,
		BaseHealth:   3,
		BaseSpeed:    2,
		ScalePerWave: 0.05,
		Variants: []EnemyVariant{
			{ID: "grunt", Glyph: 'g', Weight: 0.8},
			{ID: "runner", Glyph: 'r', Weight: 0.2},
		},
	}
}

// WaveListener receives director notifications.
type WaveListener interface {
	WaveStarted(wave int)
	EnemySpawned(h Handle)
	WavesCompleted()
}

type nopListener struct{}

func (nopListener) WaveStarted(int)     {}
func (nopListener) EnemySpawned(Handle) {}
func (nopListener) WavesCompleted()     {}

// WaveDirector paces enemy creation. Wave N spawns N+1 enemies, one per
// clock tick, with health and speed scaled by 1 + (N-1)*ScalePerWave.
// When the roster empties after a wave has finished spawning, the next wave
// starts automatically; after the last wave the win is signalled once.
type WaveDirector struct {
	cfg      WaveConfig
	board    *Board
	roster   *Roster
	rng      *rand.Rand
	logger   *log.Logger
	listener WaveListener

	clock *Clock
	sub   Subscription

	wave    int
	toSpawn int
	spawned int
	state   WaveState
	won     bool
}

// NewWaveDirector wires a director to the board it reads the path from and the
// roster it fills. A nil logger discards output; a nil listener is ignored.
func NewWaveDirector(cfg WaveConfig, board *Board, roster *Roster, rng *rand.Rand, logger *log.Logger, listener WaveListener) *WaveDirector {
	if cfg.MaxWaves <= 0 {
		cfg.MaxWaves = DefaultWaveConfig().MaxWaves
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &WaveDirector{
		cfg:      cfg,
		board:    board,
		roster:   roster,
		rng:      rng,
		logger:   logger,
		listener: listener,
	}
}

// Attach subscribes the director to clock ticks, replacing any earlier clock.
func (d *WaveDirector) Attach(c *Clock) {
	d.Detach()
	d.clock = c
	d.sub = c.Subscribe(d.OnTick)
}

// Detach stops listening to the clock.
func (d *WaveDirector) Detach() {
	if d.clock != nil {
		d.clock.Unsubscribe(d.sub)
		d.clock = nil
	}
}

// Wave returns the current wave number (0 before the first wave).
func (d *WaveDirector) Wave() int { return d.wave }

// MaxWaves returns the number of waves needed to win.
func (d *WaveDirector) MaxWaves() int { return d.cfg.MaxWaves }

// State returns the lifecycle state.
func (d *WaveDirector) State() WaveState { return d.state }

// Spawning reports whether the current wave still has enemies to emit.
func (d *WaveDirector) Spawning() bool { return d.state == WaveSpawning }

// WaveComplete reports whether all spawns of the current wave are out.
func (d *WaveDirector) WaveComplete() bool { return d.spawned == d.toSpawn }

// Remaining returns how many enemies of the current wave are yet to spawn.
func (d *WaveDirector) Remaining() int { return d.toSpawn - d.spawned }

// Multiplier returns the stat multiplier for a wave.
func (d *WaveDirector) Multiplier(wave int) float64 {
	return 1 + float64(wave-1)*d.cfg.ScalePerWave
}

// HealthFor returns enemy health for a wave.
func (d *WaveDirector) HealthFor(wave int) int {
	return ceilScaled(d.cfg.BaseHealth, d.Multiplier(wave))
}

// SpeedFor returns enemy speed for a wave.
func (d *WaveDirector) SpeedFor(wave int) float64 {
	return d.cfg.BaseSpeed * d.Multiplier(wave)
}

// StartNextWave begins the next wave. It is only accepted while Idle and
// before the last wave has started.
func (d *WaveDirector) StartNextWave() bool {
	if d.state != WaveIdle || d.wave >= d.cfg.MaxWaves {
		return false
	}
	d.wave++
	d.toSpawn = 1 + d.wave
	d.spawned = 0
	d.state = WaveSpawning
	d.logger.Debug("wave started", "wave", d.wave, "enemies", d.toSpawn)
	d.listener.WaveStarted(d.wave)
	return true
}

// OnTick spawns one enemy while the wave is spawning.
func (d *WaveDirector) OnTick(uint64) {
	if d.state != WaveSpawning {
		return
	}
	d.spawn()
	d.spawned++
	if d.spawned >= d.toSpawn {
		d.state = WaveIdle
		// Every spawn of the wave may have failed, leaving nothing to clear.
		d.CheckCleared()
	}
}

// spawn adds one enemy to the roster. Configuration problems are logged and
// the slot is still consumed so the wave cannot stall.
func (d *WaveDirector) spawn() {
	path := d.board.PathPositions()
	if len(path) == 0 {
		d.logger.Warn("cannot spawn enemy: path not initialized", "wave", d.wave)
		return
	}
	variant, ok := d.chooseVariant()
	if !ok {
		d.logger.Warn("cannot spawn enemy: no enemy variants configured", "wave", d.wave)
		return
	}
	e := NewEnemy(variant, d.wave, d.HealthFor(d.wave), d.SpeedFor(d.wave), path)
	h := d.roster.Add(e)
	d.listener.EnemySpawned(h)
}

// chooseVariant picks a variant with probability proportional to its weight.
func (d *WaveDirector) chooseVariant() (EnemyVariant, bool) {
	vs := d.cfg.Variants
	switch len(vs) {
	case 0:
		return EnemyVariant{}, false
	case 1:
		return vs[0], true
	}

	total := 0.0
	for _, v := range vs {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total <= 0 {
		d.logger.Warn("enemy variant weights do not sum to a positive value, using first variant")
		return vs[0], true
	}

	r := d.rng.Float64() * total
	for _, v := range vs {
		if v.Weight <= 0 {
			continue
		}
		if r < v.Weight {
			return v, true
		}
		r -= v.Weight
	}
	// Float rounding can leave r just above the last weight.
	for i := len(vs) - 1; i >= 0; i-- {
		if vs[i].Weight > 0 {
			return vs[i], true
		}
	}
	return vs[0], true
}

// CheckCleared advances or finishes the game once the roster is empty and no
// wave is spawning. The roster owner calls it after removing enemies.
func (d *WaveDirector) CheckCleared() {
	if d.state != WaveIdle || d.wave == 0 || d.roster.Len() > 0 {
		return
	}
	if d.wave < d.cfg.MaxWaves {
		d.StartNextWave()
		return
	}
	d.state = WaveComplete
	if !d.won {
		d.won = true
		d.logger.Debug("all waves cleared", "waves", d.wave)
		d.listener.WavesCompleted()
	}
}

// Reset returns the director to wave 0. The clock subscription is kept.
func (d *WaveDirector) Reset() {
	d.wave = 0
	d.toSpawn = 0
	d.spawned = 0
	d.state = WaveIdle
	d.won = false
}
