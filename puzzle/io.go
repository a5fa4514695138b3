package puzzle

/*

Text rendering

Grids and wall maps render to fixed-width text for logs, test
failures, and the progress reporter's partial-solution display.

*/

import (
	"fmt"
	"strings"
)

// String renders a grid as rows of values, empty cells as dots.
// Multi-digit alphabets get padded columns so the rows line up.
func (g *Grid) String() string {
	width := 1
	if g.Height > 9 || g.Width > 9 {
		width = 2
	}
	var sb strings.Builder
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if v := g.Value(r, c); v == 0 {
				sb.WriteString(strings.Repeat(" ", width-1) + ".")
			} else {
				fmt.Fprintf(&sb, "%*d", width, v)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders a wall map as a lattice of dots, dashes, and bars.
func (m *WallMap) String() string {
	var sb strings.Builder
	for r := 0; r <= m.Height; r++ {
		// dot row with horizontal edges
		for c := 0; c < m.Width; c++ {
			sb.WriteByte('+')
			if m.Horizontal[r][c] {
				sb.WriteString("---")
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("+\n")
		if r == m.Height {
			break
		}
		// cell row with vertical edges
		for c := 0; c <= m.Width; c++ {
			if m.Vertical[r][c] {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			if c < m.Width {
				sb.WriteString("   ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
