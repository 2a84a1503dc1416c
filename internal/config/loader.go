package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDefense loads tower-defense configuration.
// Search order: customPath -> ~/.arcade/configs/defense.yaml -> ./configs/defense.yaml -> embedded default
// A custom path must exist, parse and validate; the other sources are skipped when unusable.
func LoadDefense(customPath string) (DefenseConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefenseConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDefense(data)
		if err != nil {
			return DefenseConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("defense.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseDefense(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "defense.yaml")); err == nil {
		if cfg, err := parseDefense(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseDefense(defaultDefenseYAML)
	if err != nil {
		return DefaultDefenseConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseDefense decodes YAML on top of the defaults so partial files only
// override what they name.
func parseDefense(data []byte) (DefenseConfig, error) {
	cfg := DefaultDefenseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefenseConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DefenseConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
