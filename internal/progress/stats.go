// Package progress tracks long-lived player progress: aggregate statistics,
// achievement unlocks and the daily challenge set. Everything here is a pure
// function of its inputs; callers own the values.
package progress

import (
	"time"

	"github.com/vovakirdan/pathquest/internal/registry"
)

// Stats are the aggregate counters achievements are evaluated against.
type Stats struct {
	TotalStars      int           `json:"totalStars"`
	LevelsCompleted int           `json:"levelsCompleted"` // Distinct levels
	Completions     int           `json:"completions"`     // Every successful attempt
	Failures        int           `json:"failures"`
	CoinsEarned     int           `json:"coinsEarned"`
	PerfectLevels   int           `json:"perfectLevels"`
	FastestLevel    time.Duration `json:"fastestLevel"` // Zero until a level is completed
	HintsUsed       int           `json:"hintsUsed"`
	PowerUpsUsed    int           `json:"powerUpsUsed"`
	BestStreak      int           `json:"bestStreak"`
}

// RecordTime keeps the fastest completion time.
func (s Stats) RecordTime(d time.Duration) Stats {
	if d > 0 && (s.FastestLevel == 0 || d < s.FastestLevel) {
		s.FastestLevel = d
	}
	return s
}

// Value returns the current value of a metric. Fastest level is reported in
// whole seconds, rounded up, and 0 when no level has been completed.
func (s Stats) Value(m registry.Metric) int {
	switch m {
	case registry.MetricTotalStars:
		return s.TotalStars
	case registry.MetricLevelsCompleted:
		return s.LevelsCompleted
	case registry.MetricCoinsEarned:
		return s.CoinsEarned
	case registry.MetricPerfectLevels:
		return s.PerfectLevels
	case registry.MetricFastestLevel:
		if s.FastestLevel <= 0 {
			return 0
		}
		return int((s.FastestLevel + time.Second - 1) / time.Second)
	case registry.MetricHintsUsed:
		return s.HintsUsed
	case registry.MetricPowerUpsUsed:
		return s.PowerUpsUsed
	case registry.MetricBestStreak:
		return s.BestStreak
	default:
		return 0
	}
}
