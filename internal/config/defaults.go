package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pathquest.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded default configuration. It mirrors the
// embedded YAML and is used when that fails to parse.
func DefaultConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			MaxLevel:          200,
			GreedyProbability: 0.7,
			Spawn: SpawnRates{
				Hint:    0.02,
				Life:    0.01,
				PowerUp: 0.03,
			},
			Tiers: []TierBand{
				{Name: "Meadow", First: 1, Last: 20, SizeBase: 5, SizeStep: 10, SizeMax: 6,
					ObstacleRate: 0.15, HurdleChance: 0.00, CoinRate: 0.12, ExtraMoves: 8},
				{Name: "Forest", First: 21, Last: 50, SizeBase: 6, SizeStep: 15, SizeMax: 7,
					ObstacleRate: 0.20, HurdleChance: 0.02, CoinRate: 0.10, ExtraMoves: 7},
				{Name: "Caves", First: 51, Last: 90, SizeBase: 7, SizeStep: 20, SizeMax: 8,
					ObstacleRate: 0.24, HurdleChance: 0.04, CoinRate: 0.09, ExtraMoves: 6},
				{Name: "Ruins", First: 91, Last: 130, SizeBase: 8, SizeStep: 20, SizeMax: 9,
					ObstacleRate: 0.28, HurdleChance: 0.05, CoinRate: 0.08, ExtraMoves: 5},
				{Name: "Peaks", First: 131, Last: 170, SizeBase: 9, SizeStep: 20, SizeMax: 10,
					ObstacleRate: 0.32, HurdleChance: 0.06, CoinRate: 0.07, ExtraMoves: 4},
				{Name: "Summit", First: 171, Last: 200, SizeBase: 10, SizeStep: 30, SizeMax: 10,
					ObstacleRate: 0.35, HurdleChance: 0.08, CoinRate: 0.06, ExtraMoves: 3},
			},
		},
		Economy: EconomyConfig{
			CoinValue:         3,
			CompletionBase:    10,
			CompletionPerStar: 5,
			ExtraMovesAmount:  5,
			HintPrice:         20,
			LifePrice:         50,
			StartCoins:        0,
			StartLives:        5,
			StartHints:        3,
		},
		Daily: DailyConfig{
			ChallengesPerDay: 3,
			FastThreshold:    30 * time.Second,
			Requirements: map[string]int{
				"levels_completed": 3,
				"coins_collected":  30,
				"stars_earned":     6,
				"perfect_levels":   1,
				"hints_used":       2,
				"fast_completions": 2,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
