package puzzle

/*

Units and regions

A unit is an ordered run of cells that must jointly satisfy a
constraint: the rows and columns of a permutation puzzle, the
diagonals of an X variant, the cages of a killer puzzle.  A region
map partitions the grid into regions (boxes, cages) and remembers
which regions border which, for the adjacency-style puzzles.

*/

import (
	"fmt"
	"sort"
)

// Unit constraint kinds.
const (
	UniqueUnit = "unique" // member values must all differ
	SumUnit    = "sum"    // member values must add to Target
)

// A GroupID names a unit for error reporting: "row 3", "cage 7".
type GroupID struct {
	Gtype string
	Index int
}

// Group type constants, human-readable but not localized.
const (
	GtypeRow      = "row"
	GtypeCol      = "column"
	GtypeBox      = "box"
	GtypeCage     = "cage"
	GtypeDiagonal = "diagonal"
)

// Group IDs implement Stringer.
func (gid GroupID) String() string {
	if gid.Gtype == "" {
		return fmt.Sprintf("<group> %d", gid.Index)
	}
	if gid.Gtype == GtypeDiagonal {
		if gid.Index == 0 {
			return "main diagonal"
		}
		return "anti diagonal"
	}
	return fmt.Sprintf("%s %d", gid.Gtype, gid.Index)
}

// A Unit is an ordered sequence of cell coordinates under a joint
// constraint.  Units are static for the puzzle instance.
type Unit struct {
	ID     GroupID
	Kind   string // UniqueUnit or SumUnit
	Cells  []Coord
	Target int // SumUnit only
}

// RowUnits returns one UniqueUnit per grid row.
func RowUnits(height, width int) []Unit {
	units := make([]Unit, height)
	for r := 0; r < height; r++ {
		cells := make([]Coord, width)
		for c := 0; c < width; c++ {
			cells[c] = Coord{r, c}
		}
		units[r] = Unit{ID: GroupID{GtypeRow, r + 1}, Kind: UniqueUnit, Cells: cells}
	}
	return units
}

// ColUnits returns one UniqueUnit per grid column.
func ColUnits(height, width int) []Unit {
	units := make([]Unit, width)
	for c := 0; c < width; c++ {
		cells := make([]Coord, height)
		for r := 0; r < height; r++ {
			cells[r] = Coord{r, c}
		}
		units[c] = Unit{ID: GroupID{GtypeCol, c + 1}, Kind: UniqueUnit, Cells: cells}
	}
	return units
}

// DiagonalUnits returns the two main diagonals of a square grid as
// uniqueness units (the X of killer-X puzzles).
func DiagonalUnits(side int) []Unit {
	main := make([]Coord, side)
	anti := make([]Coord, side)
	for i := 0; i < side; i++ {
		main[i] = Coord{i, i}
		anti[i] = Coord{i, side - 1 - i}
	}
	return []Unit{
		{ID: GroupID{GtypeDiagonal, 0}, Kind: UniqueUnit, Cells: main},
		{ID: GroupID{GtypeDiagonal, 1}, Kind: UniqueUnit, Cells: anti},
	}
}

/*

Region maps

*/

// A RegionMap partitions grid cells into numbered regions.  It keeps
// both directions of the mapping (cell to region, region to cells)
// plus the region adjacency graph, because different puzzle families
// need different views of the same partition.
type RegionMap struct {
	height, width int
	ids           [][]int   // region id per cell
	cells         [][]Coord // member cells per region
	borders       [][]int   // sorted neighboring region ids per region
}

// NewRegionMap builds a region map from a matrix of region ids.  Ids
// must be dense: every id in 0..max must own at least one cell.  The
// input matrix must be rectangular and non-empty.
func NewRegionMap(ids [][]int) (*RegionMap, error) {
	height := len(ids)
	if height == 0 || len(ids[0]) == 0 {
		return nil, specError(RegionAttribute, 0, TooSmallCondition)
	}
	width := len(ids[0])
	max := -1
	for r, row := range ids {
		if len(row) != width {
			return nil, countError(RegionAttribute, len(row), width)
		}
		for c, id := range row {
			if id < 0 {
				return nil, specError(RegionAttribute, Coord{r, c}, OutOfRangeCondition)
			}
			if id > max {
				max = id
			}
		}
	}

	m := &RegionMap{
		height:  height,
		width:   width,
		cells:   make([][]Coord, max+1),
		borders: make([][]int, max+1),
	}
	m.ids = make([][]int, height)
	for r := range ids {
		m.ids[r] = append([]int(nil), ids[r]...)
	}

	neighbors := make([]map[int]bool, max+1)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			id := ids[r][c]
			m.cells[id] = append(m.cells[id], Coord{r, c})
			for _, d := range [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= height || nc < 0 || nc >= width {
					continue
				}
				if nid := ids[nr][nc]; nid != id {
					if neighbors[id] == nil {
						neighbors[id] = make(map[int]bool)
					}
					neighbors[id][nid] = true
				}
			}
		}
	}
	for id := range m.cells {
		if len(m.cells[id]) == 0 {
			return nil, specError(RegionAttribute, id, SparseRegionsCondition)
		}
		for nid := range neighbors[id] {
			m.borders[id] = append(m.borders[id], nid)
		}
		sort.Ints(m.borders[id])
	}
	return m, nil
}

// RegularBoxes builds the region map of a standard sudoku box
// layout: the grid is tiled with boxH x boxW rectangles.  The box
// dimensions must divide the grid dimensions.
func RegularBoxes(height, width, boxH, boxW int) (*RegionMap, error) {
	if boxH < 1 || boxW < 1 || height%boxH != 0 || width%boxW != 0 {
		return nil, specError(RegionAttribute, Coord{boxH, boxW}, NonRectangularCondition)
	}
	perRow := width / boxW
	ids := make([][]int, height)
	for r := 0; r < height; r++ {
		ids[r] = make([]int, width)
		for c := 0; c < width; c++ {
			ids[r][c] = (r/boxH)*perRow + c/boxW
		}
	}
	return NewRegionMap(ids)
}

// Count returns the number of regions.
func (m *RegionMap) Count() int {
	return len(m.cells)
}

// Size returns the dimensions of the mapped grid.
func (m *RegionMap) Size() (height, width int) {
	return m.height, m.width
}

// ID returns the region id owning cell (r, c).
func (m *RegionMap) ID(r, c int) int {
	return m.ids[r][c]
}

// Cells returns the member cells of a region, in reading order.  The
// returned slice is shared with the map; callers must not modify it.
func (m *RegionMap) Cells(id int) []Coord {
	return m.cells[id]
}

// Borders returns the ids of the regions bordering a region.  The
// returned slice is shared with the map; callers must not modify it.
func (m *RegionMap) Borders(id int) []int {
	return m.borders[id]
}

// Units converts the regions into uniqueness units with the given
// group type ("box", "cage").
func (m *RegionMap) Units(gtype string) []Unit {
	units := make([]Unit, len(m.cells))
	for id := range m.cells {
		units[id] = Unit{
			ID:    GroupID{gtype, id + 1},
			Kind:  UniqueUnit,
			Cells: append([]Coord(nil), m.cells[id]...),
		}
	}
	return units
}

// check verifies the map covers exactly a height x width grid.
func (m *RegionMap) check(height, width int) error {
	if m.height != height || m.width != width {
		return countError(RegionAttribute, m.height*m.width, height*width)
	}
	return nil
}

/*

Wall maps

*/

// A WallMap is the output form of loop-drawing puzzles: boolean
// grids of the horizontal and vertical lattice edges that carry the
// loop.  Horizontal has (Height+1) rows of Width edges; Vertical has
// Height rows of (Width+1) edges.
type WallMap struct {
	Height, Width int
	Horizontal    [][]bool
	Vertical      [][]bool
}

// NewWallMap makes an empty wall map for a Height x Width cell grid.
func NewWallMap(height, width int) *WallMap {
	m := &WallMap{Height: height, Width: width}
	m.Horizontal = make([][]bool, height+1)
	for r := range m.Horizontal {
		m.Horizontal[r] = make([]bool, width)
	}
	m.Vertical = make([][]bool, height)
	for r := range m.Vertical {
		m.Vertical[r] = make([]bool, width+1)
	}
	return m
}

// CellEdges counts how many of the four edges around cell (r, c) are
// set.
func (m *WallMap) CellEdges(r, c int) int {
	n := 0
	if m.Horizontal[r][c] {
		n++
	}
	if m.Horizontal[r+1][c] {
		n++
	}
	if m.Vertical[r][c] {
		n++
	}
	if m.Vertical[r][c+1] {
		n++
	}
	return n
}
