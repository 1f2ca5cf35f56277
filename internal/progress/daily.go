package progress

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/vovakirdan/pathquest/internal/config"
)

// DayLayout formats the day key of a daily challenge set.
const DayLayout = "2006-01-02"

// EventType identifies a gameplay event that advances daily challenges.
type EventType string

const (
	EventLevelsCompleted EventType = "levels_completed"
	EventCoinsCollected  EventType = "coins_collected"
	EventStarsEarned     EventType = "stars_earned"
	EventPerfectLevels   EventType = "perfect_levels"
	EventHintsUsed       EventType = "hints_used"
	EventFastCompletions EventType = "fast_completions"
)

// EventTypes lists every challenge type in canonical order.
var EventTypes = []EventType{
	EventLevelsCompleted,
	EventCoinsCollected,
	EventStarsEarned,
	EventPerfectLevels,
	EventHintsUsed,
	EventFastCompletions,
}

// DailyChallenge is one counter of today's set.
type DailyChallenge struct {
	Type        EventType `json:"type"`
	Progress    int       `json:"progress"`
	Requirement int       `json:"requirement"`
	Completed   bool      `json:"completed"`
}

// DailyState is the challenge set for one day plus the running streak.
type DailyState struct {
	Day        string           `json:"day"`
	Challenges []DailyChallenge `json:"challenges"`
	Streak     int              `json:"streak"`
}

// DayKey returns the day key for t in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// AllCompleted reports whether every challenge in a non-empty set is done.
func (d DailyState) AllCompleted() bool {
	if len(d.Challenges) == 0 {
		return false
	}
	for _, c := range d.Challenges {
		if !c.Completed {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no memory with d.
func (d DailyState) Clone() DailyState {
	out := d
	if d.Challenges != nil {
		out.Challenges = make([]DailyChallenge, len(d.Challenges))
		copy(out.Challenges, d.Challenges)
	}
	return out
}

// NewDailySet picks the challenges for a day. The choice depends only on the
// day key, so every player sees the same set.
func NewDailySet(day string, cfg config.DailyConfig) []DailyChallenge {
	h := fnv.New64a()
	h.Write([]byte(day))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	n := min(max(cfg.ChallengesPerDay, 1), len(EventTypes))
	perm := rng.Perm(len(EventTypes))

	set := make([]DailyChallenge, 0, n)
	for _, idx := range perm[:n] {
		t := EventTypes[idx]
		req := cfg.Requirements[string(t)]
		if req <= 0 {
			req = 1
		}
		set = append(set, DailyChallenge{Type: t, Requirement: req})
	}
	return set
}

// Rollover regenerates the set when now falls on a different day than the
// stored one. The streak grows only when the stored set belongs to the day
// before now and was fully completed; any other rollover resets it to 0.
func Rollover(state DailyState, cfg config.DailyConfig, now time.Time) DailyState {
	today := DayKey(now)
	if state.Day == today {
		return state.Clone()
	}

	streak := 0
	if state.Day == DayKey(now.AddDate(0, 0, -1)) && state.AllCompleted() {
		streak = state.Streak + 1
	}

	return DailyState{
		Day:        today,
		Challenges: NewDailySet(today, cfg),
		Streak:     streak,
	}
}

// TickDaily rolls the set over if needed and adds amount to every unfinished
// challenge of the event's type.
func TickDaily(state DailyState, cfg config.DailyConfig, now time.Time, event EventType, amount int) DailyState {
	next := Rollover(state, cfg, now)
	if amount <= 0 {
		return next
	}

	for i := range next.Challenges {
		c := &next.Challenges[i]
		if c.Type != event || c.Completed {
			continue
		}
		c.Progress = min(c.Progress+amount, c.Requirement)
		c.Completed = c.Progress >= c.Requirement
	}
	return next
}

// Has reports whether today's set tracks event.
func (d DailyState) Has(event EventType) bool {
	for _, c := range d.Challenges {
		if c.Type == event {
			return true
		}
	}
	return false
}
