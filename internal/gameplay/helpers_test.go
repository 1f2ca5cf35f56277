package gameplay

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pathquest/internal/config"
	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/level"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	quiet := log.New(io.Discard)
	cfg := config.DefaultConfig()
	gen := level.NewGenerator(cfg.Generator, 1, level.WithLogger(quiet))
	repo := level.NewRepository(gen, quiet)
	clk := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewEngine(repo, cfg, WithClock(clk.Now), WithLogger(quiet)), clk
}

// storeLevel replaces level id with a hand-built grid.
func storeLevel(t *testing.T, e *Engine, id, budget int, rows ...string) level.Level {
	t.Helper()
	g := level.MustParseGrid(rows...)
	lvl := level.Level{ID: id, Tier: 1, Grid: g, MoveBudget: budget}
	for r := range g {
		for c := range g[r] {
			switch g[r][c].Type {
			case level.TileStart:
				lvl.Start = core.Pos(r, c)
			case level.TileGoal:
				lvl.Goal = core.Pos(r, c)
			}
		}
	}
	lvl.Solution = level.FindShortestPath(g, lvl.Start, lvl.Goal)
	lvl.Shortest = len(lvl.Solution) - 1
	if err := level.Validate(lvl); err != nil {
		t.Fatalf("fixture level %d invalid: %v", id, err)
	}
	if err := e.Repository().Store(lvl); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	return lvl
}

// openLevel is a 5x5 board with the goal four steps right of the start.
var openLevel = []string{
	"S...G",
	".....",
	".....",
	".....",
	".....",
}

func startLevel(t *testing.T, e *Engine, id int) GameState {
	t.Helper()
	state, err := e.StartLevel(e.NewState(), id)
	if err != nil {
		t.Fatalf("StartLevel(%d) failed: %v", id, err)
	}
	return state
}

func move(t *testing.T, e *Engine, state GameState, dirs ...core.Direction) (GameState, MoveResult) {
	t.Helper()
	var res MoveResult
	for i, d := range dirs {
		state, res = e.ApplyMove(state, d)
		if res.Rejected {
			t.Fatalf("move %d (%s) rejected: %s", i, d, res.Reason)
		}
	}
	return state, res
}

const (
	up    = core.DirUp
	down  = core.DirDown
	left  = core.DirLeft
	right = core.DirRight
)
