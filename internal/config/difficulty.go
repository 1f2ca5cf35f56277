package config

import (
	"errors"
	"fmt"
)

// ErrNoTier is returned when a level ID falls outside every tier band.
var ErrNoTier = errors.New("config: no tier covers level")

// TierIndex returns the 0-based index of the band containing levelID.
func (g GeneratorConfig) TierIndex(levelID int) (int, error) {
	for i, t := range g.Tiers {
		if levelID >= t.First && levelID <= t.Last {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %d", ErrNoTier, levelID)
}

// TierFor returns the band containing levelID.
func (g GeneratorConfig) TierFor(levelID int) (TierBand, error) {
	i, err := g.TierIndex(levelID)
	if err != nil {
		return TierBand{}, err
	}
	return g.Tiers[i], nil
}

// GridSize returns the side length of the grid for a level in this band.
func (t TierBand) GridSize(levelID int) int {
	step := t.SizeStep
	if step <= 0 {
		step = 1 // Prevent division by zero
	}
	size := t.SizeBase + (levelID-t.First)/step
	if t.SizeMax > 0 && size > t.SizeMax {
		size = t.SizeMax
	}
	return max(size, 3)
}

// Validate checks that the tier table covers 1..MaxLevel contiguously and that
// every probability is sane.
func (c Config) Validate() error {
	g := c.Generator
	if len(g.Tiers) == 0 {
		return errors.New("config: generator.tiers is empty")
	}
	if g.GreedyProbability < 0 || g.GreedyProbability > 1 {
		return fmt.Errorf("config: greedy_probability %.2f outside [0,1]", g.GreedyProbability)
	}

	next := 1
	for i, t := range g.Tiers {
		if t.First != next {
			return fmt.Errorf("config: tier %d (%s) starts at %d, want %d", i, t.Name, t.First, next)
		}
		if t.Last < t.First {
			return fmt.Errorf("config: tier %d (%s) ends before it starts", i, t.Name)
		}
		total := t.ObstacleRate + t.HurdleChance + t.CoinRate + g.Spawn.Hint + g.Spawn.Life + g.Spawn.PowerUp
		if t.ObstacleRate < 0 || t.HurdleChance < 0 || t.CoinRate < 0 || total > 1 {
			return fmt.Errorf("config: tier %d (%s) spawn rates invalid (sum %.2f)", i, t.Name, total)
		}
		if t.ExtraMoves < 0 {
			return fmt.Errorf("config: tier %d (%s) has negative extra_moves", i, t.Name)
		}
		next = t.Last + 1
	}
	if g.MaxLevel > 0 && next-1 < g.MaxLevel {
		return fmt.Errorf("config: tiers end at %d, max_level is %d", next-1, g.MaxLevel)
	}
	return nil
}

// LastLevel returns the highest level ID covered by the tier table.
func (g GeneratorConfig) LastLevel() int {
	if g.MaxLevel > 0 {
		return g.MaxLevel
	}
	if len(g.Tiers) == 0 {
		return 0
	}
	return g.Tiers[len(g.Tiers)-1].Last
}
