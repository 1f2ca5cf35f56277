package level

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/pathquest/internal/config"
	"github.com/vovakirdan/pathquest/internal/core"
)

// GenerateReport summarises one generation run for logging and tests.
type GenerateReport struct {
	LevelID   int
	Tier      int
	Size      int
	Connected bool         // Whether the raw fill was already solvable
	Carve     *CarveReport // Non-nil when the carver had to run
}

// Generator builds levels from the tier table.
type Generator struct {
	cfg    config.GeneratorConfig
	seed   int64
	rngFor func(levelID int) core.RNG
	carver *Carver
	logger *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRNG makes every level draw from the same injected source, in call
// order. Without it each level gets its own stream derived from the seed.
func WithRNG(rng core.RNG) Option {
	return func(g *Generator) {
		g.rngFor = func(int) core.RNG { return rng }
	}
}

// WithLogger sets the logger used for carve fallbacks.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator. Seed 0 picks a time-based seed.
func NewGenerator(cfg config.GeneratorConfig, seed int64, opts ...Option) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		cfg:    cfg,
		seed:   seed,
		logger: log.Default(),
	}
	g.rngFor = func(levelID int) core.RNG {
		return core.NewRNG(core.MixSeed(g.seed, levelID))
	}
	for _, opt := range opts {
		opt(g)
	}
	g.carver = NewCarver(cfg.GreedyProbability, g.logger)
	return g
}

// Seed returns the base seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Config returns the generator configuration.
func (g *Generator) Config() config.GeneratorConfig {
	return g.cfg
}

// CarverStats returns cumulative carve counters.
func (g *Generator) CarverStats() CarverStats {
	return g.carver.Stats()
}

// GenerateTier generates the first level of a 1-based tier band.
func (g *Generator) GenerateTier(tier int) (Level, GenerateReport, error) {
	if tier < 1 || tier > len(g.cfg.Tiers) {
		return Level{}, GenerateReport{}, fmt.Errorf("%w: tier %d", ErrUnknownLevel, tier)
	}
	return g.GenerateLevel(g.cfg.Tiers[tier-1].First)
}

// GenerateLevel builds level id. The returned level is always solvable and
// its move budget covers the shortest route.
func (g *Generator) GenerateLevel(id int) (Level, GenerateReport, error) {
	tierIdx, err := g.cfg.TierIndex(id)
	if err != nil {
		return Level{}, GenerateReport{}, fmt.Errorf("%w: %v", ErrUnknownLevel, err)
	}
	tier := g.cfg.Tiers[tierIdx]
	size := tier.GridSize(id)
	rng := g.rngFor(id)

	start := core.Pos(0, 0)
	goal := core.Pos(size-1, size-1)
	reserved := reservedCells(start, goal)
	table := NewSpawnTable(tier, g.cfg.Spawn)

	grid := NewGrid(size, size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			p := core.Pos(r, c)
			if reserved.Has(p) {
				continue
			}
			grid.SetType(p, table.Pick(rng.Float64()))
		}
	}

	grid.SetType(start, TileStart)
	grid.SetType(goal, TileGoal)
	reserved.Each(func(p core.Position) {
		if grid.InBounds(p) && grid.At(p).Type == TileObstacle {
			grid.SetType(p, TilePath)
		}
	})

	report := GenerateReport{LevelID: id, Tier: tierIdx + 1, Size: size}
	report.Connected = HasValidPath(grid, start, goal)
	if !report.Connected {
		carve := g.carver.Carve(grid, start, goal, rng)
		report.Carve = &carve
		g.logger.Debug("carved level", "level", id, "cleared", carve.Cleared, "fallback", carve.Fallback)
	}

	solution := FindShortestPath(grid, start, goal)
	shortest := len(solution) - 1

	lvl := Level{
		ID:         id,
		Tier:       tierIdx + 1,
		Grid:       grid,
		Start:      start,
		Goal:       goal,
		MoveBudget: shortest + tier.ExtraMoves,
		Shortest:   shortest,
		Solution:   solution,
		Unlocked:   id == 1,
	}
	return lvl, report, nil
}

// reservedCells returns start, goal and their in-bounds-or-not 4-neighbours.
func reservedCells(start, goal core.Position) mapset.Set[core.Position] {
	set := mapset.New[core.Position]()
	for _, p := range []core.Position{start, goal} {
		set.Put(p)
		for _, n := range p.Neighbors() {
			set.Put(n)
		}
	}
	return set
}
