package level

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pathquest/internal/config"
	"github.com/vovakirdan/pathquest/internal/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestGenerator(seed int64, opts ...Option) *Generator {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewGenerator(config.DefaultConfig().Generator, seed, opts...)
}

// findTile returns the first position holding t.
func findTile(t *testing.T, g Grid, tt TileType) core.Position {
	t.Helper()
	for r := range g {
		for c := range g[r] {
			if g[r][c].Type == tt {
				return core.Pos(r, c)
			}
		}
	}
	t.Fatalf("no %s tile in grid:\n%s", tt, g)
	return core.Position{}
}

// scriptedRNG always returns the same values.
type scriptedRNG struct {
	f float64
	n int
}

func (s scriptedRNG) Float64() float64 { return s.f }
func (s scriptedRNG) Intn(n int) int   { return s.n % n }
