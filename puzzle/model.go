package puzzle

/*

Grid and cell model

*/

import (
	"math/bits"
)

// A Cell is one square of a grid: its position, its assigned value
// (0 while unassigned), and whether the value was given by the
// puzzle description (given cells are immutable for the run).
type Cell struct {
	Row, Col int
	Value    int
	Given    bool
}

// A Grid is a Height x Width matrix of cells.  It holds assigned
// values only; candidate sets for the unassigned cells belong to the
// solver's search state, not to the grid.
type Grid struct {
	Height, Width int
	cells         []Cell
}

// NewGrid makes an empty grid of the given dimensions.
func NewGrid(height, width int) *Grid {
	g := &Grid{Height: height, Width: width, cells: make([]Cell, height*width)}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			g.cells[r*width+c] = Cell{Row: r, Col: c}
		}
	}
	return g
}

// NewGridValues makes a grid pre-filled from a value matrix, marking
// every nonzero cell as given.  The matrix must be Height x Width;
// use Spec.Validate to guarantee that before calling.
func NewGridValues(values [][]int) *Grid {
	g := NewGrid(len(values), len(values[0]))
	for r, row := range values {
		for c, v := range row {
			if v > 0 {
				cell := g.At(r, c)
				cell.Value = v
				cell.Given = true
			}
		}
	}
	return g
}

// At returns a pointer to the cell at (r, c).  Callers own the grid
// they index into; there is no bounds guard beyond the slice's own.
func (g *Grid) At(r, c int) *Cell {
	return &g.cells[r*g.Width+c]
}

// Value returns the assigned value at (r, c), 0 if unassigned.
func (g *Grid) Value(r, c int) int {
	return g.cells[r*g.Width+c].Value
}

// In reports whether (r, c) is inside the grid.
func (g *Grid) In(r, c int) bool {
	return r >= 0 && r < g.Height && c >= 0 && c < g.Width
}

// Unassigned counts the cells that still have no value.
func (g *Grid) Unassigned() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Value == 0 {
			n++
		}
	}
	return n
}

// Values returns the grid's values as a Height x Width matrix.  The
// result doesn't share storage with the grid.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.Height)
	for r := 0; r < g.Height; r++ {
		row := make([]int, g.Width)
		for c := 0; c < g.Width; c++ {
			row[c] = g.Value(r, c)
		}
		out[r] = row
	}
	return out
}

// Flat returns the grid's values in reading order.  The result
// doesn't share storage with the grid.
func (g *Grid) Flat() []int {
	out := make([]int, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].Value
	}
	return out
}

// Copy returns a deep copy of a grid.
func (g *Grid) Copy() *Grid {
	if g == nil {
		return nil
	}
	c := &Grid{Height: g.Height, Width: g.Width, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

/*

Candidate value sets

*/

// MaxValue is the largest symbol a ValueSet can hold.  Grid puzzles
// on the target site never exceed 16 symbols, so a single word is
// plenty.
const MaxValue = 63

// A ValueSet is a set of candidate values in 1..MaxValue, stored as
// a bitmask.  The zero ValueSet is the empty set, which the solver
// treats as a contradiction signal when it appears on an unassigned
// cell.
type ValueSet uint64

// NewValueSetRange makes the set {1, ..., max}.
func NewValueSetRange(max int) ValueSet {
	if max < 1 {
		return 0
	}
	if max > MaxValue {
		max = MaxValue
	}
	return ValueSet(uint64(1)<<uint(max+1) - 2)
}

// NewValueSet makes a set from the listed values.
func NewValueSet(vals ...int) ValueSet {
	var s ValueSet
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Has reports whether v is in the set.
func (s ValueSet) Has(v int) bool {
	return v >= 1 && v <= MaxValue && s&(1<<uint(v)) != 0
}

// Len returns the number of values in the set.
func (s ValueSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Empty reports whether the set has no values.
func (s ValueSet) Empty() bool {
	return s == 0
}

// Single returns the set's only value, if it has exactly one.
func (s ValueSet) Single() (int, bool) {
	if s != 0 && s&(s-1) == 0 {
		return bits.TrailingZeros64(uint64(s)), true
	}
	return 0, false
}

// Min returns the smallest value in the set, 0 if empty.
func (s ValueSet) Min() int {
	if s == 0 {
		return 0
	}
	return bits.TrailingZeros64(uint64(s))
}

// Max returns the largest value in the set, 0 if empty.
func (s ValueSet) Max() int {
	if s == 0 {
		return 0
	}
	return 63 - bits.LeadingZeros64(uint64(s))
}

// Values lists the set's members in increasing order.
func (s ValueSet) Values() []int {
	out := make([]int, 0, s.Len())
	for m := s; m != 0; m &= m - 1 {
		out = append(out, bits.TrailingZeros64(uint64(m)))
	}
	return out
}

// Add puts v into the set.
func (s *ValueSet) Add(v int) {
	if v >= 1 && v <= MaxValue {
		*s |= 1 << uint(v)
	}
}

// Remove takes v out of the set, reporting whether it was there.
func (s *ValueSet) Remove(v int) bool {
	if !s.Has(v) {
		return false
	}
	*s &^= 1 << uint(v)
	return true
}

// Union returns the union of two sets.
func (s ValueSet) Union(o ValueSet) ValueSet { return s | o }

// Intersect returns the intersection of two sets.
func (s ValueSet) Intersect(o ValueSet) ValueSet { return s & o }

// Subtract returns s with o's members removed.
func (s ValueSet) Subtract(o ValueSet) ValueSet { return s &^ o }
