package solve

import (
	"gridbot/puzzle"
)

/*

Loop family

Slitherlink draws one closed loop along the lattice edges of the
cell grid, with each numbered cell touched by exactly that many loop
edges.  The edges become the engine's cells: a synthetic 1 x E grid
whose two values are edge-absent and edge-present.  The plugin keeps
incremental per-vertex degrees, per-cell edge counts, and a
rollback union-find over the vertices, so cycle legality is a pair
of Find calls instead of a walk.

*/

// The edge alphabet.
const (
	EdgeOff = 1
	EdgeOn  = 2
)

// A loopEdge is one lattice edge: its two vertex ids and the one or
// two cells it borders.
type loopEdge struct {
	a, b  int
	cells []int
}

// loopUndo is what Retract needs to roll one accepted edge back.
type loopUndo struct {
	mark   int
	chains int
	closed bool
}

type loopRules struct {
	h, w  int
	clues []int // per cell, -1 for no clue
	edges []loopEdge
	vertE [][]int // incident edge ids per vertex

	// incremental search state
	deg     []int // per vertex, count of on-edges
	cellOn  []int
	cellOff []int
	dsu     *UnionFind
	undoAt  []loopUndo
	chains  int // connected components among on-edges
	onCount int
	closed  bool
}

func init() {
	RegisterFamily(&Family{Kind: puzzle.SlitherLink, New: newLoopSetup})
}

func newLoopSetup(spec *puzzle.Spec) (*Setup, error) {
	if spec.Givens == nil {
		return nil, puzzle.Error{
			Scope:     puzzle.SpecScope,
			Condition: puzzle.GeneralCondition,
			Attribute: puzzle.GivensAttribute,
			Values:    puzzle.ErrorData{spec.Kind, "a clue grid is required"},
		}
	}
	h, w := spec.Height, spec.Width
	lr := &loopRules{h: h, w: w, clues: make([]int, h*w)}
	for r, row := range spec.Givens {
		for c, clue := range row {
			if clue < -1 || clue > 3 {
				return nil, puzzle.Error{
					Scope:     puzzle.CellScope,
					Condition: puzzle.OutOfRangeCondition,
					Attribute: puzzle.ValueAttribute,
					Values:    puzzle.ErrorData{puzzle.Coord{Row: r, Col: c}, clue},
				}
			}
			lr.clues[r*w+c] = clue
		}
	}

	// horizontal edges first, then vertical, vertices row-major
	vertex := func(r, c int) int { return r*(w+1) + c }
	for r := 0; r <= h; r++ {
		for c := 0; c < w; c++ {
			e := loopEdge{a: vertex(r, c), b: vertex(r, c+1)}
			if r < h {
				e.cells = append(e.cells, r*w+c)
			}
			if r > 0 {
				e.cells = append(e.cells, (r-1)*w+c)
			}
			lr.edges = append(lr.edges, e)
		}
	}
	for r := 0; r < h; r++ {
		for c := 0; c <= w; c++ {
			e := loopEdge{a: vertex(r, c), b: vertex(r+1, c)}
			if c < w {
				e.cells = append(e.cells, r*w+c)
			}
			if c > 0 {
				e.cells = append(e.cells, r*w+c-1)
			}
			lr.edges = append(lr.edges, e)
		}
	}

	nv := (h + 1) * (w + 1)
	lr.vertE = make([][]int, nv)
	for i, e := range lr.edges {
		lr.vertE[e.a] = append(lr.vertE[e.a], i)
		lr.vertE[e.b] = append(lr.vertE[e.b], i)
	}
	lr.deg = make([]int, nv)
	lr.cellOn = make([]int, h*w)
	lr.cellOff = make([]int, h*w)
	lr.dsu = NewUnionFind(nv)
	lr.undoAt = make([]loopUndo, len(lr.edges))

	return &Setup{
		Grid:     puzzle.NewGrid(1, len(lr.edges)),
		Alphabet: 2,
		Plugin:   lr,
	}, nil
}

// edgeState reads an edge's decision off the engine grid.
func (lr *loopRules) edgeState(st *State, i int) int {
	return st.Grid.Value(0, i)
}

// undecidedAt counts a vertex's undecided incident edges.
func (lr *loopRules) undecidedAt(st *State, v int) int {
	n := 0
	for _, i := range lr.vertE[v] {
		if lr.edgeState(st, i) == 0 {
			n++
		}
	}
	return n
}

func (lr *loopRules) Valid(st *State, rc puzzle.Coord, v int) bool {
	i := rc.Col
	e := lr.edges[i]
	switch v {
	case EdgeOn:
		if lr.closed || lr.deg[e.a] == 2 || lr.deg[e.b] == 2 {
			return false
		}
		for _, cell := range e.cells {
			if clue := lr.clues[cell]; clue >= 0 && lr.cellOn[cell] == clue {
				return false
			}
		}
		for _, x := range []int{e.a, e.b} {
			// the vertex would be stuck at degree one
			if lr.deg[x] == 0 && lr.undecidedAt(st, x) == 1 {
				return false
			}
		}
		if lr.dsu.Same(e.a, e.b) {
			// closing a cycle is only legal when it completes the
			// one open chain into the one loop
			return lr.chains == 1 && lr.deg[e.a] == 1 && lr.deg[e.b] == 1
		}
	case EdgeOff:
		for _, cell := range e.cells {
			if clue := lr.clues[cell]; clue >= 0 {
				undecided := 4 - lr.cellOn[cell] - lr.cellOff[cell]
				if lr.cellOn[cell]+undecided-1 < clue {
					return false
				}
			}
		}
		for _, x := range []int{e.a, e.b} {
			if lr.deg[x] == 1 && lr.undecidedAt(st, x) == 1 {
				return false
			}
		}
	}
	return true
}

func (lr *loopRules) Candidates(st *State, rc puzzle.Coord) puzzle.ValueSet {
	s := puzzle.NewValueSet(EdgeOff, EdgeOn)
	if !lr.Valid(st, rc, EdgeOn) {
		s.Remove(EdgeOn)
	}
	if !lr.Valid(st, rc, EdgeOff) {
		s.Remove(EdgeOff)
	}
	return s
}

// Propagate has nothing beyond what Candidates already encodes: the
// forced-edge deductions all come out of the per-cell and per-vertex
// counters, which only change on assignment.
func (lr *loopRules) Propagate(st *State) int { return 0 }

func (lr *loopRules) Apply(st *State, rc puzzle.Coord, v int) bool {
	i := rc.Col
	e := lr.edges[i]
	if v == EdgeOff {
		for _, cell := range e.cells {
			lr.cellOff[cell]++
		}
		return true
	}
	lr.undoAt[i] = loopUndo{mark: lr.dsu.Mark(), chains: lr.chains, closed: lr.closed}
	aNew, bNew := lr.deg[e.a] == 0, lr.deg[e.b] == 0
	if lr.dsu.Union(e.a, e.b) {
		switch {
		case aNew && bNew:
			lr.chains++
		case !aNew && !bNew:
			lr.chains--
		}
	} else {
		lr.closed = true
	}
	lr.deg[e.a]++
	lr.deg[e.b]++
	lr.onCount++
	for _, cell := range e.cells {
		lr.cellOn[cell]++
	}
	return true
}

func (lr *loopRules) Retract(st *State, rc puzzle.Coord, v int) {
	i := rc.Col
	e := lr.edges[i]
	if v == EdgeOff {
		for _, cell := range e.cells {
			lr.cellOff[cell]--
		}
		return
	}
	lr.deg[e.a]--
	lr.deg[e.b]--
	lr.onCount--
	for _, cell := range e.cells {
		lr.cellOn[cell]--
	}
	lr.dsu.Rollback(lr.undoAt[i].mark)
	lr.chains = lr.undoAt[i].chains
	lr.closed = lr.undoAt[i].closed
}

func (lr *loopRules) LeafValid(st *State) bool {
	if !lr.closed || lr.onCount == 0 {
		return false
	}
	for cell, clue := range lr.clues {
		if clue >= 0 && lr.cellOn[cell] != clue {
			return false
		}
	}
	for _, d := range lr.deg {
		if d != 0 && d != 2 {
			return false
		}
	}
	return true
}

// Walls converts the finished edge assignment into the wall map the
// caller renders or replays.
func (lr *loopRules) Walls(st *State) *puzzle.WallMap {
	m := puzzle.NewWallMap(lr.h, lr.w)
	nH := (lr.h + 1) * lr.w
	for i := range lr.edges {
		if lr.edgeState(st, i) != EdgeOn {
			continue
		}
		if i < nH {
			m.Horizontal[i/lr.w][i%lr.w] = true
		} else {
			j := i - nH
			m.Vertical[j/(lr.w+1)][j%(lr.w+1)] = true
		}
	}
	return m
}
