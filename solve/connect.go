package solve

import (
	"gridbot/puzzle"
)

/*

Connectivity

Flood fill over the 4-neighbor graph.  The shading families use it
at the leaf: all white cells of a finished kurodoko board must form
one orthogonally connected area.

*/

// Connected reports whether the cells holding class form a single
// 4-connected component.  A board with no such cells is vacuously
// connected.
func Connected(g *puzzle.Grid, class int) bool {
	total := 0
	start := puzzle.Coord{Row: -1, Col: -1}
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if g.Value(r, c) == class {
				total++
				if start.Row < 0 {
					start = puzzle.Coord{Row: r, Col: c}
				}
			}
		}
	}
	if total == 0 {
		return true
	}
	return floodCount(g, class, start) == total
}

// floodCount breadth-first fills the class component containing
// start and returns its size.
func floodCount(g *puzzle.Grid, class int, start puzzle.Coord) int {
	seen := make([]bool, g.Height*g.Width)
	queue := []puzzle.Coord{start}
	seen[start.Row*g.Width+start.Col] = true
	count := 0
	for len(queue) > 0 {
		rc := queue[0]
		queue = queue[1:]
		count++
		for _, d := range [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
			nr, nc := rc.Row+d[0], rc.Col+d[1]
			if !g.In(nr, nc) || seen[nr*g.Width+nc] || g.Value(nr, nc) != class {
				continue
			}
			seen[nr*g.Width+nc] = true
			queue = append(queue, puzzle.Coord{Row: nr, Col: nc})
		}
	}
	return count
}
