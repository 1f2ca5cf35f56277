// Package gameplay implements the move state machine and the player-facing
// actions around it. An Engine holds the level repository and configuration;
// all player state travels in GameState values.
package gameplay

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pathquest/internal/config"
	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/progress"
	"github.com/vovakirdan/pathquest/internal/registry"
)

var (
	ErrUnknownLevel      = level.ErrUnknownLevel
	ErrLevelLocked       = errors.New("gameplay: level is locked")
	ErrNotPlaying        = errors.New("gameplay: no level in progress")
	ErrInsufficientCoins = errors.New("gameplay: not enough coins")
	ErrNoPowerUp         = errors.New("gameplay: power-up not in inventory")
	ErrNoHints           = errors.New("gameplay: no hints left")
	ErrInvalidTarget     = errors.New("gameplay: invalid power-up target")
	ErrInvalidAmount     = errors.New("gameplay: amount must be positive")
)

// Engine applies player actions to game states.
// One engine serves one player; it is not safe for concurrent use.
type Engine struct {
	repo   *level.Repository
	cfg    config.Config
	defs   []registry.Achievement
	clock  core.Clock
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for timers and day keys.
func WithClock(clock core.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithAchievements replaces the registered achievement definitions.
func WithAchievements(defs []registry.Achievement) Option {
	return func(e *Engine) {
		e.defs = defs
	}
}

// NewEngine creates an engine over repo.
func NewEngine(repo *level.Repository, cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		cfg:    cfg,
		clock:  core.SystemClock,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.defs == nil {
		e.defs = progress.Definitions(cfg.Achievements)
	}
	return e
}

// Repository returns the level repository.
func (e *Engine) Repository() *level.Repository {
	return e.repo
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Achievements returns the definitions the engine evaluates.
func (e *Engine) Achievements() []registry.Achievement {
	return e.defs
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// NewState returns a fresh idle state with the starting inventory.
func (e *Engine) NewState() GameState {
	econ := e.cfg.Economy
	s := GameState{
		Coins:  econ.StartCoins,
		Lives:  econ.StartLives,
		Hints:  econ.StartHints,
		Status: StatusIdle,
	}
	s.Daily = progress.Rollover(s.Daily, e.cfg.Daily, e.clock())
	s.Achievements, _ = progress.Evaluate(e.defs, s.Stats, nil, e.clock())
	return s
}

// EvaluateAchievements recomputes achievements from the state's statistics.
// It returns the updated state and the achievements unlocked by this call.
func (e *Engine) EvaluateAchievements(state GameState) (GameState, []progress.AchievementProgress) {
	next := state.Clone()
	unlocked := e.refresh(&next)
	return next, unlocked
}

// TickDailyChallenges records a daily challenge event.
func (e *Engine) TickDailyChallenges(state GameState, event progress.EventType, amount int) GameState {
	next := state.Clone()
	e.tick(&next, event, amount)
	e.refresh(&next)
	return next
}

// tick advances daily challenges on s in place.
func (e *Engine) tick(s *GameState, event progress.EventType, amount int) {
	s.Daily = progress.TickDaily(s.Daily, e.cfg.Daily, e.clock(), event, amount)
	s.Stats.BestStreak = max(s.Stats.BestStreak, s.Daily.Streak)
}

// refresh syncs level-derived statistics and re-evaluates achievements on s.
func (e *Engine) refresh(s *GameState) []progress.AchievementProgress {
	s.Stats.TotalStars = e.repo.TotalStars()
	s.Stats.LevelsCompleted = e.repo.CompletedCount()
	s.Stats.PerfectLevels = e.repo.PerfectCount()

	all, unlocked := progress.Evaluate(e.defs, s.Stats, s.Achievements, e.clock())
	s.Achievements = all
	for _, a := range unlocked {
		e.logger.Info("achievement unlocked", "id", a.ID)
	}
	return unlocked
}
