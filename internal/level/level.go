package level

import (
	"errors"

	"github.com/vovakirdan/pathquest/internal/core"
)

// ErrUnknownLevel is returned for level IDs outside the repository.
var ErrUnknownLevel = errors.New("level: unknown level")

// MaxStars is the best rating a level can receive.
const MaxStars = 3

// Level is one generated puzzle plus the player's persistent progress on it.
type Level struct {
	ID         int             `json:"id" yaml:"id"`
	Tier       int             `json:"tier" yaml:"tier"` // 1-based tier band
	Grid       Grid            `json:"grid" yaml:"-"`
	Start      core.Position   `json:"start" yaml:"start"`
	Goal       core.Position   `json:"goal" yaml:"goal"`
	MoveBudget int             `json:"moveBudget" yaml:"move_budget"`
	Shortest   int             `json:"shortest" yaml:"shortest"`
	Solution   []core.Position `json:"solution,omitempty" yaml:"-"`

	Stars     int  `json:"stars" yaml:"stars"`
	Unlocked  bool `json:"unlocked" yaml:"unlocked"`
	Completed bool `json:"completed" yaml:"completed"`
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	out := l
	out.Grid = l.Grid.Clone()
	if l.Solution != nil {
		out.Solution = make([]core.Position, len(l.Solution))
		copy(out.Solution, l.Solution)
	}
	return out
}

// Size returns the grid side length.
func (l Level) Size() int {
	return l.Grid.Rows()
}

// Progress is the persistent, monotonic part of a level.
type Progress struct {
	ID        int  `json:"id"`
	Stars     int  `json:"stars"`
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
}

// Merge combines two progress records without ever regressing: stars take
// the maximum, flags are OR-ed.
func (p Progress) Merge(other Progress) Progress {
	return Progress{
		ID:        p.ID,
		Stars:     max(p.Stars, other.Stars),
		Unlocked:  p.Unlocked || other.Unlocked,
		Completed: p.Completed || other.Completed,
	}
}

// Progress extracts the persistent flags.
func (l Level) Progress() Progress {
	return Progress{ID: l.ID, Stars: l.Stars, Unlocked: l.Unlocked, Completed: l.Completed}
}
