package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/defense.yaml
var defaultDefenseYAML []byte

// DefaultDefenseConfig returns the hardcoded default configuration.
// It mirrors defaults/defense.yaml and is used when the embedded file cannot be parsed.
func DefaultDefenseConfig() DefenseConfig {
	classic := DefenseBoard{
		Width:  10,
		Height: 10,
		Start:  Point{X: 0, Y: 0},
		Goal:   Point{X: 9, Y: 9},
	}
	return DefenseConfig{
		Board: classic,
		Clock: DefenseClock{TickInterval: time.Second},
		Waves: DefenseWaves{
			MaxWaves:     5,
			BaseHealth:   3,
			BaseSpeed:    2,
			ScalePerWave: 0.05,
			Variants: []DefenseVariant{
				{ID: "grunt", Glyph: "g", Weight: 0.8},
				{ID: "runner", Glyph: "r", Weight: 0.2},
			},
		},
		Economy: DefenseEconomy{
			StartingLives:   3,
			StartingMoney:   5,
			WaveBonus:       2,
			LifeLossPenalty: 1,
			KillReward:      0,
		},
		Towers: []DefenseTower{
			{ID: "archer", Name: "Archer", Glyph: "A", Cost: 2, BaseDamage: 1, Range: 1.5, AttackInterval: time.Second},
			{ID: "cannon", Name: "Cannon", Glyph: "C", Cost: 4, BaseDamage: 3, Range: 2.5, AttackInterval: 2 * time.Second},
		},
		Layouts: map[string]DefenseLayout{
			"classic": {Board: classic, MaxWaves: 5},
			"wide": {
				Board: DefenseBoard{
					Width:  24,
					Height: 12,
					Start:  Point{X: 0, Y: 0},
					Goal:   Point{X: 23, Y: 11},
				},
				MaxWaves: 8,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "defense":
		return defaultDefenseYAML
	default:
		return nil
	}
}
