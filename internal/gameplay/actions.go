package gameplay

import (
	"fmt"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/progress"
)

// StartLevel begins a fresh attempt at level id. Collected flags are reset and
// a stored grid that fails validation is regenerated first. Zero lives do not
// block a start; the host decides what running out of lives means.
func (e *Engine) StartLevel(state GameState, id int) (GameState, error) {
	if !e.repo.IsUnlocked(id) {
		if id < 1 || id > e.repo.Count() {
			return state, fmt.Errorf("start level %d: %w", id, ErrUnknownLevel)
		}
		return state, fmt.Errorf("start level %d: %w", id, ErrLevelLocked)
	}

	lvl, repaired, err := e.repo.Restart(id)
	if err != nil {
		return state, fmt.Errorf("start level %d: %w", id, err)
	}
	if repaired {
		e.logger.Warn("level failed validation and was regenerated", "level", id)
	}

	next := state.Clone()
	next.CurrentLevelID = id
	next.PlayerPos = lvl.Start
	next.MovesUsed = 0
	next.MoveBudget = lvl.MoveBudget
	next.BonusMoves = 0
	next.Board = lvl.Grid
	next.HintPath = nil
	next.Status = StatusPlaying
	next.StartedAt = e.clock()
	next.Elapsed = 0
	next.Daily = progress.Rollover(next.Daily, e.cfg.Daily, next.StartedAt)
	return next, nil
}

// Restart begins a new attempt at the current level.
func (e *Engine) Restart(state GameState) (GameState, error) {
	if state.CurrentLevelID == 0 {
		return state, ErrNotPlaying
	}
	return e.StartLevel(state, state.CurrentLevelID)
}

// NextLevel starts the level after the current one.
func (e *Engine) NextLevel(state GameState) (GameState, error) {
	return e.StartLevel(state, state.CurrentLevelID+1)
}

// UseHint spends a hint to reveal the shortest remaining route to the goal.
func (e *Engine) UseHint(state GameState) (GameState, error) {
	if !state.IsPlaying() {
		return state, ErrNotPlaying
	}
	if state.Hints <= 0 {
		return state, ErrNoHints
	}

	route, err := e.hintRoute(state)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	next.Hints--
	next.HintPath = route
	next.Stats.HintsUsed++
	e.tick(&next, progress.EventHintsUsed, 1)
	e.refresh(&next)
	return next, nil
}

// hintRoute follows the level's stored solution when the player is on it
// and searches the attempt's board otherwise.
func (e *Engine) hintRoute(state GameState) ([]core.Position, error) {
	lvl, err := e.repo.Get(state.CurrentLevelID)
	if err != nil {
		return nil, fmt.Errorf("hint: %w", err)
	}
	if route := trimHint(lvl.Solution, state.PlayerPos); route != nil {
		return route, nil
	}
	route := level.FindShortestPath(state.Board, state.PlayerPos, lvl.Goal)
	if route == nil {
		return nil, fmt.Errorf("hint: goal unreachable from %s", state.PlayerPos)
	}
	return route, nil
}

// UsePowerUp spends one power-up from the inventory.
//   - teleport moves the player to target without using a move; the goal is
//     not a valid target and rewards on target are collected.
//   - wallbreak turns the obstacle at target, adjacent to the player, into path.
//   - extramoves adds the configured number of moves to this attempt.
func (e *Engine) UsePowerUp(state GameState, pu level.PowerUp, target core.Position) (GameState, error) {
	if !state.IsPlaying() {
		return state, ErrNotPlaying
	}
	if !pu.IsValid() || state.PowerUps.Count(pu) <= 0 {
		return state, fmt.Errorf("%s: %w", pu, ErrNoPowerUp)
	}

	next := state.Clone()
	switch pu {
	case level.PowerUpTeleport:
		tile := next.Board.At(target)
		if !tile.Type.Passable() || tile.Type == level.TileGoal || target == next.PlayerPos {
			return state, fmt.Errorf("teleport to %s: %w", target, ErrInvalidTarget)
		}
		next.PlayerPos = target
		next.HintPath = nil
		var res MoveResult
		e.collect(&next, target, &res)
	case level.PowerUpWallBreak:
		if !next.Board.InBounds(target) || next.PlayerPos.Manhattan(target) != 1 || next.Board.At(target).Type != level.TileObstacle {
			return state, fmt.Errorf("wallbreak at %s: %w", target, ErrInvalidTarget)
		}
		next.Board.SetType(target, level.TilePath)
	case level.PowerUpExtraMoves:
		next.BonusMoves += e.cfg.Economy.ExtraMovesAmount
	}

	next.PowerUps = next.PowerUps.Add(pu, -1)
	next.Stats.PowerUpsUsed++
	e.refresh(&next)
	return next, nil
}

// PurchaseCoins credits coins bought through an external checkout.
func (e *Engine) PurchaseCoins(state GameState, amount int) (GameState, error) {
	if amount <= 0 {
		return state, ErrInvalidAmount
	}
	next := state.Clone()
	next.Coins += amount
	return next, nil
}

// BuyHints exchanges coins for n hints.
func (e *Engine) BuyHints(state GameState, n int) (GameState, error) {
	return e.buy(state, n, e.cfg.Economy.HintPrice, func(s *GameState) { s.Hints += n })
}

// BuyLives exchanges coins for n lives.
func (e *Engine) BuyLives(state GameState, n int) (GameState, error) {
	return e.buy(state, n, e.cfg.Economy.LifePrice, func(s *GameState) { s.Lives += n })
}

func (e *Engine) buy(state GameState, n, price int, grant func(*GameState)) (GameState, error) {
	if n <= 0 {
		return state, ErrInvalidAmount
	}
	cost := n * price
	if state.Coins < cost {
		return state, fmt.Errorf("need %d coins, have %d: %w", cost, state.Coins, ErrInsufficientCoins)
	}
	next := state.Clone()
	next.Coins -= cost
	grant(&next)
	return next, nil
}
