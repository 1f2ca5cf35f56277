package progress

import (
	"testing"
	"time"

	"github.com/vovakirdan/pathquest/internal/config"
)

func testDailyConfig() config.DailyConfig {
	return config.DefaultConfig().Daily
}

func day(n int) time.Time {
	return time.Date(2026, 3, n, 15, 30, 0, 0, time.UTC)
}

// completeAll finishes every challenge in the set for now.
func completeAll(s DailyState, cfg config.DailyConfig, now time.Time) DailyState {
	for _, c := range s.Challenges {
		s = TickDaily(s, cfg, now, c.Type, c.Requirement)
	}
	return s
}

func TestNewDailySetDeterministic(t *testing.T) {
	cfg := testDailyConfig()

	a := NewDailySet("2026-03-01", cfg)
	b := NewDailySet("2026-03-01", cfg)
	if len(a) != cfg.ChallengesPerDay {
		t.Fatalf("got %d challenges, want %d", len(a), cfg.ChallengesPerDay)
	}

	seen := make(map[EventType]bool)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("challenge %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if seen[a[i].Type] {
			t.Errorf("duplicate challenge type %s", a[i].Type)
		}
		seen[a[i].Type] = true
		if want := cfg.Requirements[string(a[i].Type)]; a[i].Requirement != want {
			t.Errorf("%s requirement = %d, want %d", a[i].Type, a[i].Requirement, want)
		}
	}
}

func TestNewDailySetClampsCount(t *testing.T) {
	cfg := testDailyConfig()
	cfg.ChallengesPerDay = 99
	cfg.Requirements = nil

	set := NewDailySet("2026-03-01", cfg)
	if len(set) != len(EventTypes) {
		t.Errorf("got %d challenges, want %d", len(set), len(EventTypes))
	}
	for _, c := range set {
		if c.Requirement != 1 {
			t.Errorf("%s requirement = %d, want default 1", c.Type, c.Requirement)
		}
	}
}

func TestTickDaily(t *testing.T) {
	cfg := testDailyConfig()
	cfg.ChallengesPerDay = len(EventTypes)
	s := Rollover(DailyState{}, cfg, day(1))

	s = TickDaily(s, cfg, day(1), EventCoinsCollected, 12)
	s = TickDaily(s, cfg, day(1), EventCoinsCollected, 12)

	var coins DailyChallenge
	for _, c := range s.Challenges {
		if c.Type == EventCoinsCollected {
			coins = c
		}
	}
	if coins.Progress != 24 || coins.Completed {
		t.Errorf("coins = %+v, want progress 24 not completed", coins)
	}

	s = TickDaily(s, cfg, day(1), EventCoinsCollected, 100)
	for _, c := range s.Challenges {
		if c.Type == EventCoinsCollected {
			coins = c
		}
	}
	if !coins.Completed || coins.Progress != coins.Requirement {
		t.Errorf("coins = %+v, want completed and capped", coins)
	}

	before := s.Clone()
	s = TickDaily(s, cfg, day(1), EventHintsUsed, 0)
	for i := range s.Challenges {
		if s.Challenges[i] != before.Challenges[i] {
			t.Errorf("zero amount changed challenge %s", s.Challenges[i].Type)
		}
	}
}

func TestTickDailyDoesNotAlias(t *testing.T) {
	cfg := testDailyConfig()
	s := Rollover(DailyState{}, cfg, day(1))
	typ := s.Challenges[0].Type

	_ = TickDaily(s, cfg, day(1), typ, 1)
	if s.Challenges[0].Progress != 0 {
		t.Error("TickDaily mutated its input")
	}
}

func TestDailyStreak(t *testing.T) {
	cfg := testDailyConfig()

	s := Rollover(DailyState{}, cfg, day(1))
	if s.Day != "2026-03-01" || s.Streak != 0 {
		t.Fatalf("initial state = %+v", s)
	}

	s = completeAll(s, cfg, day(1))
	if !s.AllCompleted() {
		t.Fatal("expected every challenge completed")
	}

	// Next day: yesterday fully completed, streak grows.
	s = Rollover(s, cfg, day(2))
	if s.Streak != 1 {
		t.Errorf("streak on day 2 = %d, want 1", s.Streak)
	}
	if s.AllCompleted() {
		t.Error("new day should start with a fresh set")
	}

	// Day 2 left unfinished: the day after resets.
	s = Rollover(s, cfg, day(3))
	if s.Streak != 0 {
		t.Errorf("streak on day 3 = %d, want 0", s.Streak)
	}
}

func TestDailyStreakChains(t *testing.T) {
	cfg := testDailyConfig()
	s := Rollover(DailyState{}, cfg, day(1))

	for d := 1; d <= 4; d++ {
		s = Rollover(s, cfg, day(d))
		s = completeAll(s, cfg, day(d))
	}
	s = Rollover(s, cfg, day(5))
	if s.Streak != 4 {
		t.Errorf("streak after four completed days = %d, want 4", s.Streak)
	}

	// Skipping a whole day breaks the chain even if the last set was done.
	s = completeAll(s, cfg, day(5))
	s = Rollover(s, cfg, day(7))
	if s.Streak != 0 {
		t.Errorf("streak after a skipped day = %d, want 0", s.Streak)
	}
}

func TestRolloverSameDay(t *testing.T) {
	cfg := testDailyConfig()
	s := Rollover(DailyState{}, cfg, day(1))
	s = TickDaily(s, cfg, day(1), s.Challenges[0].Type, 1)

	again := Rollover(s, cfg, day(1).Add(5*time.Hour))
	if again.Challenges[0].Progress != 1 {
		t.Error("same-day rollover should keep progress")
	}
}
