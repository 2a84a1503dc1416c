package config

import (
	"fmt"
	"sort"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No per-wave scaling
)

// ParsePreset maps a flag value to a preset. Empty means "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Presets lists the selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ApplyDefensePreset modifies the config based on a difficulty preset.
// Normal and empty leave the loaded values alone.
func ApplyDefensePreset(cfg *DefenseConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Economy.StartingLives = 5
		cfg.Economy.StartingMoney = 8
		cfg.Waves.ScalePerWave = 0.03
	case DifficultyHard:
		cfg.Economy.StartingLives = 2
		cfg.Economy.StartingMoney = 3
		cfg.Economy.LifeLossPenalty = 2
		cfg.Waves.ScalePerWave = 0.1
	case DifficultyFixed:
		cfg.Waves.ScalePerWave = 0
	}
}

// ApplyLayout replaces the board and campaign length with a named layout.
// An empty name keeps the top-level board.
func ApplyLayout(cfg *DefenseConfig, name string) error {
	if name == "" {
		return nil
	}
	l, ok := cfg.Layouts[name]
	if !ok {
		return fmt.Errorf("unknown layout %q (have %s)", name, strings.Join(LayoutNames(*cfg), ", "))
	}
	cfg.Board = l.Board
	if l.MaxWaves > 0 {
		cfg.Waves.MaxWaves = l.MaxWaves
	}
	return nil
}

// LayoutNames returns the configured layout names, sorted.
func LayoutNames(cfg DefenseConfig) []string {
	names := make([]string, 0, len(cfg.Layouts))
	for name := range cfg.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
