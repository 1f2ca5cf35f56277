// Package registry provides a global registry of achievement definitions.
// Achievement sets register themselves in init() functions, allowing the
// evaluator to discover them without a hardcoded list.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Metric names the player statistic an achievement tracks.
type Metric string

const (
	MetricTotalStars      Metric = "total_stars"
	MetricLevelsCompleted Metric = "levels_completed"
	MetricCoinsEarned     Metric = "coins_earned"
	MetricPerfectLevels   Metric = "perfect_levels"
	MetricFastestLevel    Metric = "fastest_level" // Seconds; lower is better
	MetricHintsUsed       Metric = "hints_used"
	MetricPowerUpsUsed    Metric = "powerups_used"
	MetricBestStreak      Metric = "best_streak"
)

// LowerIsBetter reports whether the threshold is an upper bound.
func (m Metric) LowerIsBetter() bool {
	return m == MetricFastestLevel
}

// Achievement describes one unlockable goal.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Metric      Metric
	Threshold   int
}

var (
	achievements = make(map[string]Achievement)
	mu           sync.RWMutex
)

// Register adds an achievement definition to the registry.
// Typically called from an init() function.
// Panics if the ID is empty or already registered.
func Register(a Achievement) {
	mu.Lock()
	defer mu.Unlock()

	if a.ID == "" {
		panic("registry: achievement with empty ID")
	}
	if _, exists := achievements[a.ID]; exists {
		panic(fmt.Sprintf("registry: achievement %q already registered", a.ID))
	}

	achievements[a.ID] = a
}

// List returns all registered achievements, sorted by metric then threshold.
func List() []Achievement {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Achievement, 0, len(achievements))
	for _, a := range achievements {
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Metric != result[j].Metric {
			return result[i].Metric < result[j].Metric
		}
		if result[i].Threshold != result[j].Threshold {
			return result[i].Threshold < result[j].Threshold
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns an achievement by its ID.
// Returns an error if the ID is not registered.
func Lookup(id string) (Achievement, error) {
	mu.RLock()
	defer mu.RUnlock()

	a, ok := achievements[id]
	if !ok {
		return Achievement{}, fmt.Errorf("registry: unknown achievement %q", id)
	}

	return a, nil
}

// Exists checks if an achievement with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := achievements[id]
	return ok
}
