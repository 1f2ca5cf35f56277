// Package session hosts one player's game: it owns the current GameState,
// persists it to storage after every terminal transition and queues progress
// for remote sync. Front ends (CLI, TUI, SSH) drive the game through it.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/gameplay"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/outbox"
	"github.com/vovakirdan/pathquest/internal/progress"
	"github.com/vovakirdan/pathquest/internal/storage"
)

// Session is a single player's game. Not safe for concurrent use.
type Session struct {
	playerID string
	engine   *gameplay.Engine
	store    *storage.Store // Optional
	syncer   *outbox.Syncer // Optional
	logger   *log.Logger
	state    gameplay.GameState
}

// Open creates a session and restores the player's last save when one exists.
// store and syncer may be nil.
func Open(engine *gameplay.Engine, store *storage.Store, syncer *outbox.Syncer, playerID string, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		playerID: playerID,
		engine:   engine,
		store:    store,
		syncer:   syncer,
		logger:   logger.With("player", playerID),
		state:    engine.NewState(),
	}
	if store == nil {
		return s, nil
	}

	rec, err := store.LoadSnapshot(playerID)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if rec == nil {
		return s, nil
	}

	snap, err := gameplay.DecodeSnapshot(rec.Payload)
	if err != nil {
		s.logger.Warn("ignoring unreadable save", "error", err)
		return s, nil
	}
	if snap.Seed != engine.Repository().Generator().Seed() {
		s.logger.Warn("save was made with a different seed; layouts will differ", "saved", snap.Seed)
	}
	state, err := engine.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.state = state
	s.logger.Debug("save restored", "level", state.CurrentLevelID, "coins", state.Coins)
	return s, nil
}

// PlayerID returns the session's player.
func (s *Session) PlayerID() string {
	return s.playerID
}

// State returns the current game state.
func (s *Session) State() gameplay.GameState {
	return s.state
}

// Engine returns the session's engine.
func (s *Session) Engine() *gameplay.Engine {
	return s.engine
}

// Level returns level id as stored in the repository.
func (s *Session) Level(id int) (level.Level, error) {
	return s.engine.Repository().Get(id)
}

// Start begins level id.
func (s *Session) Start(id int) error {
	return s.apply(func(st gameplay.GameState) (gameplay.GameState, error) {
		return s.engine.StartLevel(st, id)
	})
}

// Restart begins a new attempt at the current level.
func (s *Session) Restart() error {
	return s.apply(s.engine.Restart)
}

// Next begins the level after the current one.
func (s *Session) Next() error {
	return s.apply(s.engine.NextLevel)
}

// Hint reveals the route to the goal.
func (s *Session) Hint() error {
	return s.apply(s.engine.UseHint)
}

// PowerUp uses a power-up at target.
func (s *Session) PowerUp(pu level.PowerUp, target core.Position) error {
	return s.apply(func(st gameplay.GameState) (gameplay.GameState, error) {
		return s.engine.UsePowerUp(st, pu, target)
	})
}

// BuyHints exchanges coins for hints.
func (s *Session) BuyHints(n int) error {
	return s.apply(func(st gameplay.GameState) (gameplay.GameState, error) {
		return s.engine.BuyHints(st, n)
	})
}

// BuyLives exchanges coins for lives.
func (s *Session) BuyLives(n int) error {
	return s.apply(func(st gameplay.GameState) (gameplay.GameState, error) {
		return s.engine.BuyLives(st, n)
	})
}

// PurchaseCoins credits externally purchased coins.
func (s *Session) PurchaseCoins(n int) error {
	return s.apply(func(st gameplay.GameState) (gameplay.GameState, error) {
		return s.engine.PurchaseCoins(st, n)
	})
}

func (s *Session) apply(fn func(gameplay.GameState) (gameplay.GameState, error)) error {
	next, err := fn(s.state)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Move applies a move. Finished attempts are recorded and saved.
func (s *Session) Move(dir core.Direction) gameplay.MoveResult {
	prev := s.state
	next, res := s.engine.ApplyMove(prev, dir)
	s.state = next

	if res.Completed || res.Failed {
		s.recordResult(res)
		if err := s.Save(); err != nil {
			s.logger.Error("save failed", "error", err)
		}
	}
	if len(res.Unlocked) > 0 {
		s.queue(outbox.KindAchievement, res.Unlocked)
	}
	return res
}

func (s *Session) recordResult(res gameplay.MoveResult) {
	outcome := storage.OutcomeFailed
	if res.Completed {
		outcome = storage.OutcomeCompleted
	}
	result := storage.LevelResult{
		PlayerID: s.playerID,
		LevelID:  s.state.CurrentLevelID,
		Outcome:  outcome,
		Stars:    res.Stars,
		Moves:    s.state.MovesUsed,
		Budget:   s.state.Budget(),
		Duration: s.state.Elapsed,
	}

	if s.store != nil {
		if _, err := s.store.SaveResult(result); err != nil {
			s.logger.Error("could not record result", "level", result.LevelID, "error", err)
		}
	}
	s.queue(outbox.KindResult, result)
}

// Save persists the current state and queues it for sync.
func (s *Session) Save() error {
	snap := s.engine.Snapshot(s.state, s.playerID)
	if s.store != nil {
		data, err := gameplay.EncodeSnapshot(snap)
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
		if err := s.store.SaveSnapshot(s.playerID, snap.Version, data); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}
	s.queue(outbox.KindSnapshot, snap)
	return nil
}

// queue adds v to the sync outbox; failures only log.
func (s *Session) queue(kind string, v any) {
	if s.syncer == nil {
		return
	}
	if err := s.syncer.Enqueue(s.playerID, kind, v); err != nil {
		s.logger.Warn("could not queue sync", "kind", kind, "error", err)
	}
}

// Summary is a compact view of the player's progress.
type Summary struct {
	Completed    int
	TotalStars   int
	Perfect      int
	Levels       int
	Unlocked     int
	Achievements int
	Streak       int
	Stats        progress.Stats
}

// Summary returns the player's progress totals.
func (s *Session) Summary() Summary {
	repo := s.engine.Repository()
	unlocked := 0
	for _, p := range repo.Progress() {
		if p.Unlocked {
			unlocked++
		}
	}
	return Summary{
		Completed:    repo.CompletedCount(),
		TotalStars:   repo.TotalStars(),
		Perfect:      repo.PerfectCount(),
		Levels:       repo.Count(),
		Unlocked:     unlocked,
		Achievements: progress.UnlockedCount(s.state.Achievements),
		Streak:       progress.Rollover(s.state.Daily, s.engine.Config().Daily, s.engine.Now()).Streak,
		Stats:        s.state.Stats,
	}
}
