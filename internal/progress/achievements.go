package progress

import (
	"time"

	"github.com/vovakirdan/pathquest/internal/registry"
)

func init() {
	for _, a := range builtin {
		registry.Register(a)
	}
}

var builtin = []registry.Achievement{
	{ID: "first_steps", Title: "First Steps", Description: "Complete your first level", Metric: registry.MetricLevelsCompleted, Threshold: 1},
	{ID: "explorer", Title: "Explorer", Description: "Complete 10 levels", Metric: registry.MetricLevelsCompleted, Threshold: 10},
	{ID: "veteran", Title: "Veteran", Description: "Complete 50 levels", Metric: registry.MetricLevelsCompleted, Threshold: 50},
	{ID: "pathfinder", Title: "Pathfinder", Description: "Complete all 200 levels", Metric: registry.MetricLevelsCompleted, Threshold: 200},
	{ID: "star_collector", Title: "Star Collector", Description: "Earn 30 stars", Metric: registry.MetricTotalStars, Threshold: 30},
	{ID: "star_master", Title: "Star Master", Description: "Earn 300 stars", Metric: registry.MetricTotalStars, Threshold: 300},
	{ID: "perfectionist", Title: "Perfectionist", Description: "Finish a level with 3 stars", Metric: registry.MetricPerfectLevels, Threshold: 1},
	{ID: "flawless", Title: "Flawless", Description: "Finish 25 levels with 3 stars", Metric: registry.MetricPerfectLevels, Threshold: 25},
	{ID: "coin_hoarder", Title: "Coin Hoarder", Description: "Earn 500 coins", Metric: registry.MetricCoinsEarned, Threshold: 500},
	{ID: "tycoon", Title: "Tycoon", Description: "Earn 5000 coins", Metric: registry.MetricCoinsEarned, Threshold: 5000},
	{ID: "speed_runner", Title: "Speed Runner", Description: "Finish a level in 10 seconds", Metric: registry.MetricFastestLevel, Threshold: 10},
	{ID: "lightning", Title: "Lightning", Description: "Finish a level in 5 seconds", Metric: registry.MetricFastestLevel, Threshold: 5},
	{ID: "hint_seeker", Title: "Hint Seeker", Description: "Use 5 hints", Metric: registry.MetricHintsUsed, Threshold: 5},
	{ID: "power_player", Title: "Power Player", Description: "Use 10 power-ups", Metric: registry.MetricPowerUpsUsed, Threshold: 10},
	{ID: "dedicated", Title: "Dedicated", Description: "Reach a 3 day streak", Metric: registry.MetricBestStreak, Threshold: 3},
	{ID: "unstoppable", Title: "Unstoppable", Description: "Reach a 7 day streak", Metric: registry.MetricBestStreak, Threshold: 7},
}

// AchievementProgress is the unlock state of one achievement. Once Unlocked
// is set it is never cleared.
type AchievementProgress struct {
	ID         string    `json:"id"`
	Progress   int       `json:"progress"`
	Unlocked   bool      `json:"unlocked"`
	UnlockedAt time.Time `json:"unlockedAt,omitzero"`
}

// Definitions returns the registered achievements with threshold overrides
// applied. Overrides for unknown IDs are ignored.
func Definitions(overrides map[string]int) []registry.Achievement {
	defs := registry.List()
	for i := range defs {
		if v, ok := overrides[defs[i].ID]; ok && v > 0 {
			defs[i].Threshold = v
		}
	}
	return defs
}

// Reached reports whether stats satisfy an achievement.
func Reached(a registry.Achievement, stats Stats) bool {
	v := stats.Value(a.Metric)
	if a.Metric.LowerIsBetter() {
		return v > 0 && v <= a.Threshold
	}
	return v >= a.Threshold
}

// Evaluate recomputes achievement progress from stats. Entries already
// unlocked in prev are copied untouched, including ones whose definition no
// longer exists. The second result holds the achievements unlocked by this
// call, in definition order.
func Evaluate(defs []registry.Achievement, stats Stats, prev []AchievementProgress, now time.Time) ([]AchievementProgress, []AchievementProgress) {
	byID := make(map[string]AchievementProgress, len(prev))
	for _, p := range prev {
		byID[p.ID] = p
	}

	all := make([]AchievementProgress, 0, len(defs))
	var unlocked []AchievementProgress
	seen := make(map[string]bool, len(defs))

	for _, def := range defs {
		seen[def.ID] = true
		if p, ok := byID[def.ID]; ok && p.Unlocked {
			all = append(all, p)
			continue
		}

		p := AchievementProgress{ID: def.ID, Progress: stats.Value(def.Metric)}
		if Reached(def, stats) {
			p.Unlocked = true
			p.UnlockedAt = now
			unlocked = append(unlocked, p)
		}
		all = append(all, p)
	}

	for _, p := range prev {
		if p.Unlocked && !seen[p.ID] {
			all = append(all, p)
		}
	}

	return all, unlocked
}

// UnlockedCount returns how many entries are unlocked.
func UnlockedCount(list []AchievementProgress) int {
	n := 0
	for _, p := range list {
		if p.Unlocked {
			n++
		}
	}
	return n
}
