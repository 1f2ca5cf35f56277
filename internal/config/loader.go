package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "pathquest.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.pathquest/configs/pathquest.yaml -> ./configs/pathquest.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a file only needs the keys it
// overrides, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pathquest", "configs", filename)
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	tiers := make([]TierBand, len(cfg.Generator.Tiers))
	copy(tiers, cfg.Generator.Tiers)
	cfg.Generator.Tiers = tiers

	if IsFixedPreset(preset) {
		// Sizes still grow; densities stay at the first band's values.
		if len(tiers) > 0 {
			first := tiers[0]
			for i := range tiers {
				tiers[i].ObstacleRate = first.ObstacleRate
				tiers[i].HurdleChance = first.HurdleChance
				tiers[i].CoinRate = first.CoinRate
			}
		}
		return
	}

	switch preset {
	case DifficultyEasy:
		for i := range tiers {
			tiers[i].ExtraMoves += 2
		}
		cfg.Economy.StartLives += 2
	case DifficultyHard:
		for i := range tiers {
			tiers[i].ExtraMoves = max(1, tiers[i].ExtraMoves-2)
		}
		cfg.Economy.StartLives = max(1, cfg.Economy.StartLives-2)
	}
}
