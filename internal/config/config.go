// Package config provides YAML-based configuration loading for PathQuest:
// the level tier table, spawn rates, economy values and daily challenge
// requirements.
package config

import "time"

// Config is the complete game configuration.
type Config struct {
	Generator    GeneratorConfig `yaml:"generator"`
	Economy      EconomyConfig   `yaml:"economy"`
	Daily        DailyConfig     `yaml:"daily"`
	Achievements map[string]int  `yaml:"achievements,omitempty"` // Threshold overrides by achievement ID
}

// GeneratorConfig drives procedural level generation.
type GeneratorConfig struct {
	MaxLevel          int        `yaml:"max_level"`
	GreedyProbability float64    `yaml:"greedy_probability"` // Chance the carver takes the closest neighbour
	Spawn             SpawnRates `yaml:"spawn"`
	Tiers             []TierBand `yaml:"tiers"`
}

// TierBand describes one difficulty band of consecutive levels.
type TierBand struct {
	Name string `yaml:"name"`
	// First and Last are inclusive level IDs.
	First int `yaml:"first"`
	Last  int `yaml:"last"`

	// Grid size = min(SizeMax, SizeBase + (level-First)/SizeStep).
	SizeBase int `yaml:"size_base"`
	SizeStep int `yaml:"size_step"`
	SizeMax  int `yaml:"size_max"`

	ObstacleRate float64 `yaml:"obstacle_rate"`
	HurdleChance float64 `yaml:"hurdle_chance"`
	CoinRate     float64 `yaml:"coin_rate"`
	ExtraMoves   int     `yaml:"extra_moves"` // Slack added to the shortest path
}

// SpawnRates are the small fixed rates shared by every tier.
type SpawnRates struct {
	Hint    float64 `yaml:"hint"`
	Life    float64 `yaml:"life"`
	PowerUp float64 `yaml:"powerup"` // Split evenly between the three power-up kinds
}

// EconomyConfig holds rewards and prices.
type EconomyConfig struct {
	CoinValue         int `yaml:"coin_value"`
	CompletionBase    int `yaml:"completion_base"`
	CompletionPerStar int `yaml:"completion_per_star"`
	ExtraMovesAmount  int `yaml:"extra_moves_amount"`
	HintPrice         int `yaml:"hint_price"`
	LifePrice         int `yaml:"life_price"`
	StartCoins        int `yaml:"start_coins"`
	StartLives        int `yaml:"start_lives"`
	StartHints        int `yaml:"start_hints"`
}

// DailyConfig configures the daily challenge set.
type DailyConfig struct {
	ChallengesPerDay int            `yaml:"challenges_per_day"`
	FastThreshold    time.Duration  `yaml:"fast_threshold"` // Completions at or under this count as fast
	Requirements     map[string]int `yaml:"requirements"`   // Keyed by challenge type
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables rate progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
