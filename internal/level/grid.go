package level

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pathquest/internal/core"
)

// Grid is a rectangular board of tiles indexed as Grid[row][col].
type Grid [][]Tile

// NewGrid creates a rows x cols grid filled with path tiles.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Tile, cols)
		for c := range g[r] {
			g[r][c] = NewTile(TilePath)
		}
	}
	return g
}

// ParseGrid builds a grid from ASCII rows using the Glyph characters.
// Unknown characters are an error; rows must all have the same width.
func ParseGrid(rows ...string) (Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	g := make(Grid, len(rows))
	for r, line := range rows {
		if len(line) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has width %d, want %d", r, len(line), len(rows[0]))
		}
		g[r] = make([]Tile, len(line))
		for c := 0; c < len(line); c++ {
			t, ok := tileForGlyph(line[c])
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown glyph %q", r, c, line[c])
			}
			g[r][c] = NewTile(t)
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on malformed input.
func MustParseGrid(rows ...string) Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

func tileForGlyph(b byte) (TileType, bool) {
	for i, glyph := range tileGlyphs {
		if glyph == b {
			return TileType(i), true
		}
	}
	return TilePath, false
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds returns true if the position is within the grid boundaries.
func (g Grid) InBounds(p core.Position) bool {
	return p.Row >= 0 && p.Row < g.Rows() && p.Col >= 0 && p.Col < g.Cols()
}

// At returns the tile at p. Out of bounds reads as an obstacle.
func (g Grid) At(p core.Position) Tile {
	if !g.InBounds(p) {
		return Tile{Type: TileObstacle}
	}
	return g[p.Row][p.Col]
}

// Passable reports whether p is in bounds and not an obstacle.
func (g Grid) Passable(p core.Position) bool {
	return g.InBounds(p) && g[p.Row][p.Col].Type.Passable()
}

// Set replaces the tile at p.
func (g Grid) Set(p core.Position, t Tile) {
	if g.InBounds(p) {
		g[p.Row][p.Col] = t
	}
}

// SetType replaces the tile at p with a fresh tile of type t.
func (g Grid) SetType(p core.Position, t TileType) {
	g.Set(p, NewTile(t))
}

// MarkCollected flips the collected flag at p. It never clears it.
func (g Grid) MarkCollected(p core.Position) {
	if g.InBounds(p) {
		g[p.Row][p.Col].Collected = true
	}
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r := range g {
		out[r] = make([]Tile, len(g[r]))
		copy(out[r], g[r])
	}
	return out
}

// ResetCollected clears every collected flag. Only a level restart may do this.
func (g Grid) ResetCollected() {
	for r := range g {
		for c := range g[r] {
			g[r][c].Collected = false
		}
	}
}

// Count returns the number of tiles of type t.
func (g Grid) Count(t TileType) int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c].Type == t {
				n++
			}
		}
	}
	return n
}

// Equal returns true if two grids have the same dimensions and contents.
func (g Grid) Equal(other Grid) bool {
	if g.Rows() != other.Rows() || g.Cols() != other.Cols() {
		return false
	}
	for r := range g {
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid as ASCII, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.Rows() * (g.Cols() + 1))
	for r := range g {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g[r] {
			sb.WriteByte(g[r][c].Type.Glyph())
		}
	}
	return sb.String()
}
