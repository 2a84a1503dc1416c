package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points the search path at empty directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	isolate(t)
	cfg, err := LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultDefenseConfig()) {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultDefenseConfig())
	}
	if GetDefaultYAML("defense") == nil {
		t.Error("GetDefaultYAML(defense) = nil")
	}
	if GetDefaultYAML("snake") != nil {
		t.Error("GetDefaultYAML(snake) should be nil")
	}
}

func TestCustomPathOverridesPartially(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
clock:
  tick_interval: 500ms
economy:
  starting_money: 20
`)

	cfg, err := LoadDefense(path)
	if err != nil {
		t.Fatalf("LoadDefense() error = %v", err)
	}
	if cfg.Clock.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 500ms", cfg.Clock.TickInterval)
	}
	if cfg.Economy.StartingMoney != 20 {
		t.Errorf("StartingMoney = %d, expected 20", cfg.Economy.StartingMoney)
	}
	if cfg.Economy.StartingLives != 3 || len(cfg.Towers) != 2 {
		t.Errorf("unset fields lost their defaults: lives %d towers %d", cfg.Economy.StartingLives, len(cfg.Towers))
	}
}

func TestCustomPathErrors(t *testing.T) {
	dir := isolate(t)

	if _, err := LoadDefense(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [not, a, map]\n")
	if _, err := LoadDefense(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "board:\n  width: 0\n")
	_, err := LoadDefense(invalid)
	if err == nil || !strings.Contains(err.Error(), "size must be positive") {
		t.Errorf("LoadDefense(invalid) error = %v, expected size error", err)
	}
}

func TestSearchOrder(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "configs", "defense.yaml"), "economy:\n  starting_lives: 7\n")

	cfg, err := LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense() error = %v", err)
	}
	if cfg.Economy.StartingLives != 7 {
		t.Errorf("local config ignored: lives = %d, expected 7", cfg.Economy.StartingLives)
	}

	home := os.Getenv("HOME")
	writeFile(t, filepath.Join(home, ".arcade", "configs", "defense.yaml"), "economy:\n  starting_lives: 9\n")
	cfg, _ = LoadDefense("")
	if cfg.Economy.StartingLives != 9 {
		t.Errorf("user config should win over local: lives = %d, expected 9", cfg.Economy.StartingLives)
	}
}

func TestBrokenUserConfigFallsThrough(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	writeFile(t, filepath.Join(home, ".arcade", "configs", "defense.yaml"), "towers: []\n")

	cfg, err := LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense() error = %v", err)
	}
	if len(cfg.Towers) != 2 {
		t.Errorf("invalid user config was used: %d towers", len(cfg.Towers))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DefenseConfig)
		want   string
	}{
		{"defaults", func(*DefenseConfig) {}, ""},
		{"goal outside", func(c *DefenseConfig) { c.Board.Goal = Point{X: 10, Y: 3} }, "goal"},
		{"zero tick", func(c *DefenseConfig) { c.Clock.TickInterval = 0 }, "tick_interval"},
		{"no waves", func(c *DefenseConfig) { c.Waves.MaxWaves = 0 }, "max_waves"},
		{"no variants", func(c *DefenseConfig) { c.Waves.Variants = nil }, "variants"},
		{"duplicate tower", func(c *DefenseConfig) { c.Towers[1].ID = c.Towers[0].ID }, "duplicate"},
		{"bad range", func(c *DefenseConfig) { c.Towers[0].Range = 0 }, "range"},
		{"negative cost", func(c *DefenseConfig) { c.Towers[0].Cost = -1 }, "cost"},
		{"free tower", func(c *DefenseConfig) { c.Towers[0].Cost = 0 }, ""},
		{"zero damage", func(c *DefenseConfig) { c.Towers[1].BaseDamage = 0 }, "base_damage"},
		{"zero health", func(c *DefenseConfig) { c.Waves.BaseHealth = 0 }, "base_health"},
		{"zero speed", func(c *DefenseConfig) { c.Waves.BaseSpeed = 0 }, "base_speed"},
		{"negative weight", func(c *DefenseConfig) { c.Waves.Variants[1].Weight = -0.2 }, "weight"},
		{"no positive weight", func(c *DefenseConfig) {
			for i := range c.Waves.Variants {
				c.Waves.Variants[i].Weight = 0
			}
		}, "sum to a positive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDefenseConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, expected error mentioning %q", err, tc.want)
			}
		})
	}
}

func TestApplyDefensePreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		money  int
		scale  float64
	}{
		{"", 3, 5, 0.05},
		{DifficultyNormal, 3, 5, 0.05},
		{DifficultyEasy, 5, 8, 0.03},
		{DifficultyHard, 2, 3, 0.1},
		{DifficultyFixed, 3, 5, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultDefenseConfig()
			ApplyDefensePreset(&cfg, tc.preset)
			if cfg.Economy.StartingLives != tc.lives || cfg.Economy.StartingMoney != tc.money || cfg.Waves.ScalePerWave != tc.scale {
				t.Errorf("preset %q = lives %d money %d scale %v, expected %d/%d/%v", tc.preset,
					cfg.Economy.StartingLives, cfg.Economy.StartingMoney, cfg.Waves.ScalePerWave,
					tc.lives, tc.money, tc.scale)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"easy", "Normal", " HARD ", "fixed", ""} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) error = %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestApplyLayout(t *testing.T) {
	cfg := DefaultDefenseConfig()
	if err := ApplyLayout(&cfg, "wide"); err != nil {
		t.Fatalf("ApplyLayout(wide) error = %v", err)
	}
	if cfg.Board.Width != 24 || cfg.Board.Height != 12 || cfg.Waves.MaxWaves != 8 {
		t.Errorf("wide layout = %dx%d %d waves, expected 24x12 8 waves", cfg.Board.Width, cfg.Board.Height, cfg.Waves.MaxWaves)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("wide layout invalid: %v", err)
	}

	if err := ApplyLayout(&cfg, "spiral"); err == nil {
		t.Error("ApplyLayout(spiral) should fail")
	}
	if got := LayoutNames(cfg); !reflect.DeepEqual(got, []string{"classic", "wide"}) {
		t.Errorf("LayoutNames() = %v, expected [classic wide]", got)
	}
}
