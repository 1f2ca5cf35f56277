package level

import (
	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/pathquest/internal/core"
)

// FallbackTier names how far down the repair ladder a carve had to go.
type FallbackTier int

const (
	FallbackNone     FallbackTier = iota // Walk and corridors were enough
	FallbackDiagonal                     // Main diagonal band was cleared
	FallbackClearAll                     // Every obstacle was removed
)

// String returns the string representation of a fallback tier.
func (f FallbackTier) String() string {
	switch f {
	case FallbackNone:
		return "none"
	case FallbackDiagonal:
		return "diagonal"
	case FallbackClearAll:
		return "clear_all"
	default:
		return "unknown"
	}
}

// CarveReport describes what a single Carve call changed.
type CarveReport struct {
	WalkSteps  int          // Forward steps of the greedy walk
	Backtracks int          // Dead ends popped off the walk stack
	Cleared    int          // Obstacles converted to path in total
	Fallback   FallbackTier // Deepest repair tier reached
}

// CarverStats accumulates reports across every Carve call.
type CarverStats struct {
	Carves    int
	Cleared   int
	Diagonal  int
	ClearAll  int
	Backtrack int
}

// Carver opens a guaranteed route between two cells of a disconnected grid.
type Carver struct {
	greedy float64
	logger *log.Logger
	stats  CarverStats
}

// NewCarver creates a carver. greedy is the probability of stepping to the
// neighbour closest to the goal instead of a uniformly random one.
func NewCarver(greedy float64, logger *log.Logger) *Carver {
	if logger == nil {
		logger = log.Default()
	}
	return &Carver{greedy: greedy, logger: logger}
}

// Stats returns the cumulative counters.
func (c *Carver) Stats() CarverStats {
	return c.stats
}

// Carve mutates g in place until goal is reachable from start.
// Only obstacle tiles are ever rewritten, and only to path.
func (c *Carver) Carve(g Grid, start, goal core.Position, rng core.RNG) CarveReport {
	var report CarveReport

	c.walk(g, start, goal, rng, &report)

	// Two redundant corridors give the player route variety.
	report.Cleared += carveCorridor(g, start, goal, true)
	report.Cleared += carveCorridor(g, start, goal, false)

	tier, cleared := repairFallback(g, start, goal)
	report.Fallback = tier
	report.Cleared += cleared

	c.stats.Carves++
	c.stats.Cleared += report.Cleared
	c.stats.Backtrack += report.Backtracks
	switch tier {
	case FallbackDiagonal:
		c.stats.Diagonal++
		c.logger.Info("carver fell back to diagonal band", "start", start, "goal", goal)
	case FallbackClearAll:
		c.stats.ClearAll++
		c.logger.Warn("carver cleared every obstacle; generation parameters need review",
			"start", start, "goal", goal, "rows", g.Rows(), "cols", g.Cols())
	}

	return report
}

// walk is a distance-biased depth-first walk from start to goal. Every cell
// pushed onto the stack is made passable, so the stack is always a route.
func (c *Carver) walk(g Grid, start, goal core.Position, rng core.RNG, report *CarveReport) {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return
	}

	visited := mapset.New[core.Position]()
	visited.Put(start)
	stack := []core.Position{start}
	candidates := make([]core.Position, 0, 4)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		if current == goal {
			return
		}

		candidates = candidates[:0]
		for _, n := range current.Neighbors() {
			if g.InBounds(n) && !visited.Has(n) {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			report.Backtracks++
			continue
		}

		next := c.choose(candidates, goal, rng)
		visited.Put(next)
		if g.At(next).Type == TileObstacle {
			g.SetType(next, TilePath)
			report.Cleared++
		}
		stack = append(stack, next)
		report.WalkSteps++
	}
}

// choose picks the closest candidate with probability greedy, else any.
func (c *Carver) choose(candidates []core.Position, goal core.Position, rng core.RNG) core.Position {
	if rng.Float64() >= c.greedy {
		return candidates[rng.Intn(len(candidates))]
	}

	best := candidates[0]
	bestDist := best.Manhattan(goal)
	for _, p := range candidates[1:] {
		if d := p.Manhattan(goal); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// carveCorridor clears an L-shaped route: along the row first when
// horizontalFirst, otherwise along the column first.
func carveCorridor(g Grid, from, to core.Position, horizontalFirst bool) int {
	cleared := 0
	open := func(p core.Position) {
		if g.InBounds(p) && g[p.Row][p.Col].Type == TileObstacle {
			g.SetType(p, TilePath)
			cleared++
		}
	}

	cur := from
	stepCol := func() {
		for cur.Col != to.Col {
			cur.Col += sign(to.Col - cur.Col)
			open(cur)
		}
	}
	stepRow := func() {
		for cur.Row != to.Row {
			cur.Row += sign(to.Row - cur.Row)
			open(cur)
		}
	}

	if horizontalFirst {
		stepCol()
		stepRow()
	} else {
		stepRow()
		stepCol()
	}
	return cleared
}

// repairFallback is the last line of defence after carving: clear the main
// diagonal band, then everything.
func repairFallback(g Grid, start, goal core.Position) (FallbackTier, int) {
	if HasValidPath(g, start, goal) {
		return FallbackNone, 0
	}

	cleared := 0
	for r := range g {
		for c := range g[r] {
			if core.Abs(r-c) <= 1 && g[r][c].Type == TileObstacle {
				g.SetType(core.Pos(r, c), TilePath)
				cleared++
			}
		}
	}
	if HasValidPath(g, start, goal) {
		return FallbackDiagonal, cleared
	}

	for r := range g {
		for c := range g[r] {
			if g[r][c].Type == TileObstacle {
				g.SetType(core.Pos(r, c), TilePath)
				cleared++
			}
		}
	}
	return FallbackClearAll, cleared
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
