package gameplay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/progress"
)

// Status is the attempt state machine: Idle -> Playing -> Completed | Failed.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusCompleted
	StatusFailed
)

var statusNames = [...]string{"idle", "playing", "completed", "failed"}

// String returns the string representation of a status.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("gameplay: unknown status %q", b)
}

// Inventory counts held power-ups.
type Inventory struct {
	Teleport   int `json:"teleport"`
	WallBreak  int `json:"wallbreak"`
	ExtraMoves int `json:"extramoves"`
}

// Count returns how many of p are held.
func (inv Inventory) Count(p level.PowerUp) int {
	switch p {
	case level.PowerUpTeleport:
		return inv.Teleport
	case level.PowerUpWallBreak:
		return inv.WallBreak
	case level.PowerUpExtraMoves:
		return inv.ExtraMoves
	}
	return 0
}

// Add returns the inventory with n more of p. Counts never go negative.
func (inv Inventory) Add(p level.PowerUp, n int) Inventory {
	switch p {
	case level.PowerUpTeleport:
		inv.Teleport = max(inv.Teleport+n, 0)
	case level.PowerUpWallBreak:
		inv.WallBreak = max(inv.WallBreak+n, 0)
	case level.PowerUpExtraMoves:
		inv.ExtraMoves = max(inv.ExtraMoves+n, 0)
	}
	return inv
}

// Total returns the number of power-ups held.
func (inv Inventory) Total() int {
	return inv.Teleport + inv.WallBreak + inv.ExtraMoves
}

// GameState is the complete player state. It is a value: every engine
// operation takes one and returns a new one, never mutating its input.
type GameState struct {
	CurrentLevelID int           `json:"currentLevelId"`
	PlayerPos      core.Position `json:"playerPos"`
	MovesUsed      int           `json:"movesUsed"`
	MoveBudget     int           `json:"moveBudget"` // Level budget of the current attempt
	BonusMoves     int           `json:"bonusMoves"` // Added by extra-moves power-ups

	Coins    int       `json:"coins"`
	Lives    int       `json:"lives"`
	Hints    int       `json:"hints"`
	PowerUps Inventory `json:"powerUps"`

	Achievements []progress.AchievementProgress `json:"achievements"`
	Daily        progress.DailyState            `json:"daily"`
	Stats        progress.Stats                 `json:"stats"`

	Status    Status          `json:"status"`
	Board     level.Grid      `json:"board,omitempty"` // Attempt copy of the level grid
	HintPath  []core.Position `json:"hintPath,omitempty"`
	StartedAt time.Time       `json:"startedAt,omitzero"`
	Elapsed   time.Duration   `json:"elapsed"` // Set when the attempt ends
}

// IsPlaying reports whether moves are accepted.
func (s GameState) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// Budget returns the total moves allowed in the current attempt.
func (s GameState) Budget() int {
	return s.MoveBudget + s.BonusMoves
}

// MovesLeft returns the remaining moves, never negative.
func (s GameState) MovesLeft() int {
	return max(s.Budget()-s.MovesUsed, 0)
}

// Clone returns a deep copy of s.
func (s GameState) Clone() GameState {
	out := s
	out.Board = s.Board.Clone()
	out.Daily = s.Daily.Clone()
	if s.Achievements != nil {
		out.Achievements = make([]progress.AchievementProgress, len(s.Achievements))
		copy(out.Achievements, s.Achievements)
	}
	if s.HintPath != nil {
		out.HintPath = make([]core.Position, len(s.HintPath))
		copy(out.HintPath, s.HintPath)
	}
	return out
}
