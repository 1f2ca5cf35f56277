package gameplay

import (
	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/progress"
)

// RejectReason explains why a move was ignored.
type RejectReason string

const (
	RejectNotPlaying  RejectReason = "not_playing"
	RejectOutOfBounds RejectReason = "out_of_bounds"
	RejectObstacle    RejectReason = "obstacle"
)

// MoveResult describes the side effects of one move for the host.
type MoveResult struct {
	Rejected    bool
	Reason      RejectReason
	Collected   level.TileType // TilePath when nothing was picked up
	Picked      bool
	CoinsGained int
	Hurdle      bool // Player stepped onto a hurdle tile
	Completed   bool
	Failed      bool
	Stars       int
	Improved    bool // Level's best rating went up
	Unlocked    []progress.AchievementProgress
}

// StarsFor rates a completion: 3 stars with at least half the budget left,
// 2 with at least a quarter, otherwise 1.
func StarsFor(budget, movesUsed int) int {
	if budget <= 0 {
		return level.MaxStars
	}
	left := budget - movesUsed
	switch {
	case left*2 >= budget:
		return 3
	case left*4 >= budget:
		return 2
	default:
		return 1
	}
}

// ApplyMove moves the player one cell in dir. Moves while not playing, off
// the board or into an obstacle are rejected and return state unchanged.
func (e *Engine) ApplyMove(state GameState, dir core.Direction) (GameState, MoveResult) {
	if !state.IsPlaying() {
		return state, MoveResult{Rejected: true, Reason: RejectNotPlaying}
	}
	target := state.PlayerPos.Step(dir)
	if !state.Board.InBounds(target) {
		return state, MoveResult{Rejected: true, Reason: RejectOutOfBounds}
	}
	if !state.Board.Passable(target) {
		return state, MoveResult{Rejected: true, Reason: RejectObstacle}
	}

	next := state.Clone()
	next.PlayerPos = target
	next.MovesUsed++
	next.HintPath = trimHint(next.HintPath, target)

	var res MoveResult
	e.collect(&next, target, &res)

	tile := next.Board.At(target)
	res.Hurdle = tile.Type == level.TileHurdle
	switch {
	case tile.Type == level.TileGoal:
		e.complete(&next, &res)
	case next.MovesUsed >= next.Budget():
		e.fail(&next, &res)
	}

	res.Unlocked = e.refresh(&next)
	return next, res
}

// collect claims the reward on p once.
func (e *Engine) collect(s *GameState, p core.Position, res *MoveResult) {
	tile := s.Board.At(p)
	if !tile.Pending() {
		return
	}

	switch tile.Type {
	case level.TileCoin:
		gain := e.cfg.Economy.CoinValue
		s.Coins += gain
		s.Stats.CoinsEarned += gain
		res.CoinsGained += gain
		e.tick(s, progress.EventCoinsCollected, gain)
	case level.TileHint:
		s.Hints++
	case level.TileLife:
		s.Lives++
	default:
		if pu, ok := tile.Type.PowerUp(); ok {
			s.PowerUps = s.PowerUps.Add(pu, 1)
		}
	}

	s.Board.MarkCollected(p)
	res.Collected = tile.Type
	res.Picked = true
}

func (e *Engine) complete(s *GameState, res *MoveResult) {
	stars := StarsFor(s.Budget(), s.MovesUsed)
	econ := e.cfg.Economy
	bonus := econ.CompletionBase + stars*econ.CompletionPerStar

	s.Coins += bonus
	s.Stats.CoinsEarned += bonus
	s.Stats.Completions++
	res.CoinsGained += bonus

	improved, err := e.repo.RecordCompletion(s.CurrentLevelID, stars)
	if err != nil {
		e.logger.Error("failed to record completion", "level", s.CurrentLevelID, "error", err)
	}

	s.Elapsed = e.clock().Sub(s.StartedAt)
	s.Stats = s.Stats.RecordTime(s.Elapsed)
	s.Status = StatusCompleted
	s.HintPath = nil

	e.tick(s, progress.EventLevelsCompleted, 1)
	e.tick(s, progress.EventStarsEarned, stars)
	if stars == level.MaxStars {
		e.tick(s, progress.EventPerfectLevels, 1)
	}
	if e.cfg.Daily.FastThreshold > 0 && s.Elapsed <= e.cfg.Daily.FastThreshold {
		e.tick(s, progress.EventFastCompletions, 1)
	}

	res.Completed = true
	res.Stars = stars
	res.Improved = improved
	e.logger.Debug("level completed", "level", s.CurrentLevelID, "stars", stars, "moves", s.MovesUsed, "elapsed", s.Elapsed)
}

func (e *Engine) fail(s *GameState, res *MoveResult) {
	s.Lives = max(s.Lives-1, 0)
	s.Stats.Failures++
	s.Elapsed = e.clock().Sub(s.StartedAt)
	s.Status = StatusFailed
	s.HintPath = nil
	res.Failed = true
	e.logger.Debug("level failed", "level", s.CurrentLevelID, "lives", s.Lives)
}

// trimHint drops the revealed route up to p, or all of it when the player
// left the route.
func trimHint(hint []core.Position, p core.Position) []core.Position {
	for i, h := range hint {
		if h == p {
			return hint[i:]
		}
	}
	return nil
}
