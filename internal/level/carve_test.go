package level

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/pathquest/internal/core"
)

// walledGrid returns an n x n grid of obstacles with start and goal placed.
func walledGrid(n int, start, goal core.Position) Grid {
	g := NewGrid(n, n)
	for r := range g {
		for c := range g[r] {
			g[r][c] = NewTile(TileObstacle)
		}
	}
	g.SetType(start, TileStart)
	g.SetType(goal, TileGoal)
	return g
}

func TestCarveConnectsWalledGrid(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		start, goal := core.Pos(0, 0), core.Pos(7, 7)
		g := walledGrid(8, start, goal)
		c := NewCarver(0.7, quietLogger())

		report := c.Carve(g, start, goal, rand.New(rand.NewSource(seed)))

		if !HasValidPath(g, start, goal) {
			t.Fatalf("seed %d: grid still disconnected after carve:\n%s", seed, g)
		}
		if report.Fallback != FallbackNone {
			t.Errorf("seed %d: walk should connect without fallback, got %s", seed, report.Fallback)
		}
		if report.Cleared == 0 {
			t.Errorf("seed %d: expected obstacles to be cleared", seed)
		}
	}
}

func TestCarveGreedyWalk(t *testing.T) {
	start, goal := core.Pos(0, 0), core.Pos(3, 3)
	g := walledGrid(4, start, goal)
	c := NewCarver(1.0, quietLogger())

	// Always greedy: ties go to Down before Right, so the walk runs down the
	// first column and then along the bottom row.
	report := c.Carve(g, start, goal, scriptedRNG{f: 0})

	if report.WalkSteps != 6 {
		t.Errorf("WalkSteps = %d, want 6", report.WalkSteps)
	}
	if report.Backtracks != 0 {
		t.Errorf("Backtracks = %d, want 0", report.Backtracks)
	}
	// 5 cells by the walk, 5 more by the row-first corridor, none by the
	// column-first corridor which follows the walk.
	if report.Cleared != 10 {
		t.Errorf("Cleared = %d, want 10\n%s", report.Cleared, g)
	}
}

func TestCarveCorridors(t *testing.T) {
	start, goal := core.Pos(0, 0), core.Pos(5, 5)
	g := walledGrid(6, start, goal)
	c := NewCarver(0.7, quietLogger())

	c.Carve(g, start, goal, rand.New(rand.NewSource(3)))

	for i := 0; i < 6; i++ {
		for _, p := range []core.Position{core.Pos(0, i), core.Pos(i, 5), core.Pos(i, 0), core.Pos(5, i)} {
			if g.At(p).Type == TileObstacle {
				t.Errorf("corridor cell %s still an obstacle\n%s", p, g)
			}
		}
	}
}

func TestCarveOnlyRewritesObstacles(t *testing.T) {
	start, goal := core.Pos(0, 0), core.Pos(5, 5)
	g := walledGrid(6, start, goal)
	g.SetType(core.Pos(0, 3), TileCoin)
	g.SetType(core.Pos(3, 5), TileHurdle)
	g.SetType(core.Pos(2, 2), TileLife)

	NewCarver(0.7, quietLogger()).Carve(g, start, goal, rand.New(rand.NewSource(9)))

	want := map[core.Position]TileType{
		core.Pos(0, 0): TileStart,
		core.Pos(5, 5): TileGoal,
		core.Pos(0, 3): TileCoin,
		core.Pos(3, 5): TileHurdle,
		core.Pos(2, 2): TileLife,
	}
	for p, tt := range want {
		if got := g.At(p).Type; got != tt {
			t.Errorf("tile at %s = %s, want %s", p, got, tt)
		}
	}
}

func TestCarveDeterministic(t *testing.T) {
	start, goal := core.Pos(0, 0), core.Pos(6, 6)
	a := walledGrid(7, start, goal)
	b := walledGrid(7, start, goal)

	NewCarver(0.7, quietLogger()).Carve(a, start, goal, rand.New(rand.NewSource(42)))
	NewCarver(0.7, quietLogger()).Carve(b, start, goal, rand.New(rand.NewSource(42)))

	if !a.Equal(b) {
		t.Errorf("same seed produced different carves:\n%s\n\n%s", a, b)
	}
}

func TestRepairFallbackTiers(t *testing.T) {
	t.Run("already connected", func(t *testing.T) {
		g := MustParseGrid("S..", "...", "..G")
		tier, cleared := repairFallback(g, core.Pos(0, 0), core.Pos(2, 2))
		if tier != FallbackNone || cleared != 0 {
			t.Errorf("got %s/%d, want none/0", tier, cleared)
		}
	})

	t.Run("diagonal band", func(t *testing.T) {
		start, goal := core.Pos(0, 0), core.Pos(4, 4)
		g := walledGrid(5, start, goal)

		tier, _ := repairFallback(g, start, goal)
		if tier != FallbackDiagonal {
			t.Fatalf("tier = %s, want diagonal", tier)
		}
		if g.At(core.Pos(0, 4)).Type != TileObstacle {
			t.Error("diagonal tier should leave off-band obstacles alone")
		}
		if !HasValidPath(g, start, goal) {
			t.Error("diagonal tier should connect a main-diagonal start and goal")
		}
	})

	t.Run("clear all", func(t *testing.T) {
		start, goal := core.Pos(0, 4), core.Pos(4, 0)
		g := walledGrid(5, start, goal)

		tier, _ := repairFallback(g, start, goal)
		if tier != FallbackClearAll {
			t.Fatalf("tier = %s, want clear_all", tier)
		}
		if g.Count(TileObstacle) != 0 {
			t.Errorf("clear_all left %d obstacles", g.Count(TileObstacle))
		}
		if !HasValidPath(g, start, goal) {
			t.Error("clear_all must connect the grid")
		}
	})
}

func TestCarverStats(t *testing.T) {
	c := NewCarver(0.7, quietLogger())
	for seed := int64(1); seed <= 3; seed++ {
		start, goal := core.Pos(0, 0), core.Pos(4, 4)
		c.Carve(walledGrid(5, start, goal), start, goal, rand.New(rand.NewSource(seed)))
	}

	stats := c.Stats()
	if stats.Carves != 3 {
		t.Errorf("Carves = %d, want 3", stats.Carves)
	}
	if stats.ClearAll != 0 || stats.Diagonal != 0 {
		t.Errorf("unexpected fallbacks: %+v", stats)
	}
	if stats.Cleared == 0 {
		t.Error("expected cleared counter to accumulate")
	}
}
