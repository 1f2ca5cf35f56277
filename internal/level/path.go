package level

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/pathquest/internal/core"
)

// HasValidPath reports whether goal is reachable from start by orthogonal
// steps over non-obstacle tiles. Breadth-first; O(rows*cols).
func HasValidPath(g Grid, start, goal core.Position) bool {
	if !g.Passable(start) || !g.Passable(goal) {
		return false
	}

	visited := mapset.New[core.Position]()
	visited.Put(start)
	queue := []core.Position{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == goal {
			return true
		}

		for _, n := range current.Neighbors() {
			if !g.Passable(n) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}

	return false
}

// pathNode is a BFS queue entry carrying the route that reached it.
type pathNode struct {
	pos  core.Position
	path []core.Position
}

// FindShortestPath returns a minimal route from start to goal, both ends
// included, or nil if none exists. Neighbours are expanded in
// core.Directions order so the result is deterministic.
func FindShortestPath(g Grid, start, goal core.Position) []core.Position {
	if !g.Passable(start) || !g.Passable(goal) {
		return nil
	}

	visited := mapset.New[core.Position]()
	visited.Put(start)
	queue := []pathNode{{pos: start, path: []core.Position{start}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.pos == goal {
			return current.path
		}

		for _, n := range current.pos.Neighbors() {
			if !g.Passable(n) || visited.Has(n) {
				continue
			}
			visited.Put(n)

			path := make([]core.Position, len(current.path), len(current.path)+1)
			copy(path, current.path)
			queue = append(queue, pathNode{pos: n, path: append(path, n)})
		}
	}

	return nil
}

// ShortestPathLength returns the number of moves on the shortest route, or -1
// if goal is unreachable.
func ShortestPathLength(g Grid, start, goal core.Position) int {
	path := FindShortestPath(g, start, goal)
	if path == nil {
		return -1
	}
	return len(path) - 1
}

// PathDirections converts a route of adjacent positions into moves.
func PathDirections(path []core.Position) []core.Direction {
	if len(path) < 2 {
		return nil
	}
	dirs := make([]core.Direction, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		d, ok := path[i-1].DirectionTo(path[i])
		if !ok {
			return dirs
		}
		dirs = append(dirs, d)
	}
	return dirs
}
