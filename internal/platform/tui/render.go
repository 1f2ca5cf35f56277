package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/gameplay"
	"github.com/vovakirdan/pathquest/internal/level"
)

// Board colours that are not tied to a tile type.
const (
	colorPlayer    = "#ffffff"
	colorHint      = "#ce93d8"
	colorCollected = "#3a3a3a"
	colorCursor    = "#fff176"
)

var (
	styleMu    sync.Mutex
	styleCache = map[string]lipgloss.Style{}
)

// styleFor returns a cached foreground style. SSH sessions render concurrently.
func styleFor(color string) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()
	if s, ok := styleCache[color]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	styleCache[color] = s
	return s
}

// RenderCanvas converts a canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderCanvas(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			startColor := c.GetCell(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// DrawBoard draws the attempt's board into a canvas, two columns per cell.
// Hint cells not yet walked are dotted, cursor (when non-nil) marks a
// power-up target and the player is drawn last.
func DrawBoard(state gameplay.GameState, cursor *core.Position) *Canvas {
	board := state.Board
	c := NewCanvas(board.Cols()*2, board.Rows())

	hint := make(map[core.Position]bool, len(state.HintPath))
	for _, p := range state.HintPath {
		hint[p] = true
	}

	for r := range board.Rows() {
		for col := range board.Cols() {
			p := core.Pos(r, col)
			glyph, color := tileGlyph(board.At(p))
			if hint[p] && glyph == '.' {
				glyph, color = '·', colorHint
			}
			c.Set(col*2, r, glyph, color)
		}
	}

	if cursor != nil {
		c.Set(cursor.Col*2, cursor.Row, '◎', colorCursor)
	}
	c.Set(state.PlayerPos.Col*2, state.PlayerPos.Row, '@', colorPlayer)
	return c
}

func tileGlyph(t level.Tile) (rune, string) {
	switch {
	case t.Collected:
		return '.', colorCollected
	case t.Type == level.TileObstacle:
		return '█', t.Color
	}
	return rune(t.Type.Glyph()), t.Color
}
