package defense

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

// Package-level settings injected by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names use the config as loaded.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		logger.Warn("ignoring difficulty preset", "err", err)
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes simulation logs. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig resolves the configuration for a layout: file search, preset, layout.
// An empty preset falls back to the one set with SetDifficultyPreset.
func LoadConfig(layout string, preset config.DifficultyPreset) (config.DefenseConfig, error) {
	cfg, err := config.LoadDefense(configPath)
	if err != nil {
		return config.DefenseConfig{}, err
	}
	if preset == "" {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyDefensePreset(&cfg, preset)
	}
	if err := config.ApplyLayout(&cfg, layout); err != nil {
		return config.DefenseConfig{}, err
	}
	return cfg, nil
}

// NewSimulation loads the config for a layout and builds a simulation from it.
// A nil logger uses the package logger.
func NewSimulation(layout string, preset config.DifficultyPreset, seed int64, l *log.Logger) (*core.Simulation, error) {
	cfg, err := LoadConfig(layout, preset)
	if err != nil {
		return nil, err
	}
	simCfg, err := SimConfig(cfg, seed)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = logger
	}
	return core.New(simCfg, l)
}

// SimConfig converts file configuration into a simulation config.
func SimConfig(cfg config.DefenseConfig, seed int64) (core.Config, error) {
	if err := cfg.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("invalid defense config: %w", err)
	}

	variants := make([]core.EnemyVariant, 0, len(cfg.Waves.Variants))
	for _, v := range cfg.Waves.Variants {
		variants = append(variants, core.EnemyVariant{ID: v.ID, Glyph: glyph(v.Glyph, 'e'), Weight: v.Weight})
	}
	towers := make([]core.TowerKind, 0, len(cfg.Towers))
	for _, t := range cfg.Towers {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		towers = append(towers, core.TowerKind{
			ID:             t.ID,
			Name:           name,
			Glyph:          glyph(t.Glyph, 'T'),
			Cost:           t.Cost,
			BaseDamage:     t.BaseDamage,
			Range:          t.Range,
			AttackInterval: t.AttackInterval,
		})
	}

	return core.Config{
		Width:        cfg.Board.Width,
		Height:       cfg.Board.Height,
		Start:        core.C(cfg.Board.Start.X, cfg.Board.Start.Y),
		Goal:         core.C(cfg.Board.Goal.X, cfg.Board.Goal.Y),
		TickInterval: cfg.Clock.TickInterval,
		Waves: core.WaveConfig{
			MaxWaves:     cfg.Waves.MaxWaves,
			BaseHealth:   cfg.Waves.BaseHealth,
			BaseSpeed:    cfg.Waves.BaseSpeed,
			ScalePerWave: cfg.Waves.ScalePerWave,
			Variants:     variants,
		},
		Economy: core.EconomyConfig{
			StartingLives:   cfg.Economy.StartingLives,
			StartingMoney:   cfg.Economy.StartingMoney,
			WaveBonus:       cfg.Economy.WaveBonus,
			LifeLossPenalty: cfg.Economy.LifeLossPenalty,
			KillReward:      cfg.Economy.KillReward,
		},
		Towers: towers,
		Seed:   seed,
	}, nil
}

// glyph returns the first rune of s, or fallback when s is empty.
func glyph(s string, fallback rune) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return fallback
	}
	return r
}
