// Package core provides fundamental types shared by the level generator, the
// move processor and the host layers. It has no external dependencies so that
// gameplay logic stays pure and testable.
package core

import (
	"fmt"
	"strings"
)

// Direction is one of the four orthogonal moves a player can make.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in the fixed neighbour order used by the
// grid searches. Ties are broken by this order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the (dRow, dCol) offset for one step in this direction.
// Up decreases Row, Down increases Row (screen coordinates).
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// ParseDirection accepts "up", "down", "left", "right" and their first letters.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Position is a cell coordinate on a level grid.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Pos is a convenience constructor for Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns a new Position offset by (dRow, dCol).
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Step returns the neighbouring position in the given direction.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return p.Add(dr, dc)
}

// Neighbors returns the four orthogonal neighbours in Directions order.
// Bounds are not checked.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range Directions {
		out[i] = p.Step(d)
	}
	return out
}

// DirectionTo returns the direction leading from p to an adjacent position.
// ok is false when other is not orthogonally adjacent.
func (p Position) DirectionTo(other Position) (d Direction, ok bool) {
	for _, d := range Directions {
		if p.Step(d) == other {
			return d, true
		}
	}
	return 0, false
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	return Abs(p.Row-other.Row) + Abs(p.Col-other.Col)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
