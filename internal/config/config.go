// Package config provides YAML-based game configuration loading and
// difficulty presets for the tower-defense game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DefenseConfig contains all configuration for the tower-defense game.
type DefenseConfig struct {
	Board   DefenseBoard             `yaml:"board"`
	Clock   DefenseClock             `yaml:"clock"`
	Waves   DefenseWaves             `yaml:"waves"`
	Economy DefenseEconomy           `yaml:"economy"`
	Towers  []DefenseTower           `yaml:"towers"`
	Layouts map[string]DefenseLayout `yaml:"layouts"`
}

// Point is a board coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// DefenseBoard defines the grid and the route endpoints.
type DefenseBoard struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Start  Point `yaml:"start"`
	Goal   Point `yaml:"goal"`
}

// DefenseClock defines the spawn pulse.
type DefenseClock struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// DefenseWaves defines wave pacing and scaling.
type DefenseWaves struct {
	MaxWaves     int              `yaml:"max_waves"`
	BaseHealth   int              `yaml:"base_health"`
	BaseSpeed    float64          `yaml:"base_speed"`     // Cells per second
	ScalePerWave float64          `yaml:"scale_per_wave"` // Stat multiplier added per wave
	Variants     []DefenseVariant `yaml:"variants"`
}

// DefenseVariant defines one enemy type.
type DefenseVariant struct {
	ID     string  `yaml:"id"`
	Glyph  string  `yaml:"glyph"`
	Weight float64 `yaml:"weight"`
}

// DefenseEconomy defines lives and money flow.
type DefenseEconomy struct {
	StartingLives   int `yaml:"starting_lives"`
	StartingMoney   int `yaml:"starting_money"`
	WaveBonus       int `yaml:"wave_bonus"`
	LifeLossPenalty int `yaml:"life_loss_penalty"`
	KillReward      int `yaml:"kill_reward"`
}

// DefenseTower defines one buildable tower type.
type DefenseTower struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Glyph          string        `yaml:"glyph"`
	Cost           int           `yaml:"cost"`
	BaseDamage     int           `yaml:"base_damage"`
	Range          float64       `yaml:"range"`
	AttackInterval time.Duration `yaml:"attack_interval"`
}

// DefenseLayout is a named board size and campaign length.
type DefenseLayout struct {
	Board    DefenseBoard `yaml:"board"`
	MaxWaves int          `yaml:"max_waves"`
}

// Validate reports every problem that would stop a game from being built
// or leave it unplayable.
func (c DefenseConfig) Validate() error {
	var errs []error
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board: size must be positive, got %dx%d", c.Board.Width, c.Board.Height))
	}
	for name, p := range map[string]Point{"start": c.Board.Start, "goal": c.Board.Goal} {
		if p.X < 0 || p.Y < 0 || p.X >= c.Board.Width || p.Y >= c.Board.Height {
			errs = append(errs, fmt.Errorf("board: %s (%d,%d) is outside the board", name, p.X, p.Y))
		}
	}
	if c.Clock.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("clock: tick_interval must be positive, got %s", c.Clock.TickInterval))
	}
	if c.Waves.MaxWaves <= 0 {
		errs = append(errs, fmt.Errorf("waves: max_waves must be positive, got %d", c.Waves.MaxWaves))
	}
	if c.Waves.BaseHealth <= 0 {
		errs = append(errs, fmt.Errorf("waves: base_health must be positive, got %d", c.Waves.BaseHealth))
	}
	if c.Waves.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("waves: base_speed must be positive, got %v", c.Waves.BaseSpeed))
	}
	if len(c.Waves.Variants) == 0 {
		errs = append(errs, errors.New("waves: no enemy variants configured"))
	} else {
		total := 0.0
		for _, v := range c.Waves.Variants {
			if v.Weight < 0 {
				errs = append(errs, fmt.Errorf("waves: variant %s weight must not be negative", v.ID))
			}
			total += max(v.Weight, 0)
		}
		if total <= 0 {
			errs = append(errs, errors.New("waves: variant weights must sum to a positive value"))
		}
	}
	if len(c.Towers) == 0 {
		errs = append(errs, errors.New("towers: no tower kinds configured"))
	}
	seen := make(map[string]bool, len(c.Towers))
	for _, t := range c.Towers {
		if t.ID == "" {
			errs = append(errs, errors.New("towers: tower without id"))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("towers: duplicate id %q", t.ID))
		}
		seen[t.ID] = true
		if t.Cost < 0 {
			errs = append(errs, fmt.Errorf("towers: %s cost must not be negative", t.ID))
		}
		if t.BaseDamage <= 0 {
			errs = append(errs, fmt.Errorf("towers: %s base_damage must be positive", t.ID))
		}
		if t.Range <= 0 {
			errs = append(errs, fmt.Errorf("towers: %s range must be positive", t.ID))
		}
		if t.AttackInterval <= 0 {
			errs = append(errs, fmt.Errorf("towers: %s attack_interval must be positive", t.ID))
		}
	}
	return errors.Join(errs...)
}
