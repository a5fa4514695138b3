package solve

import (
	"gridbot/puzzle"
)

/*

Shading family

Kurodoko boards shade cells black under three rules: black cells
never touch orthogonally, the white cells stay one connected area,
and a numbered cell counts the white cells visible from it along its
row and column, itself included.  The two cell states map onto the
engine's value alphabet, so the shared propagation and search drive
the shading unchanged.

*/

// The shading alphabet.
const (
	ShadeWhite = 1
	ShadeBlack = 2
)

// A sightClue is one numbered cell: the white cells visible from rc
// over its row and column must total count.
type sightClue struct {
	rc    puzzle.Coord
	count int
}

type shadeRules struct {
	clues []sightClue
}

func init() {
	RegisterFamily(&Family{Kind: puzzle.Kurodoko, New: newShadeSetup})
}

func newShadeSetup(spec *puzzle.Spec) (*Setup, error) {
	if spec.Givens == nil {
		return nil, puzzle.Error{
			Scope:     puzzle.SpecScope,
			Condition: puzzle.GeneralCondition,
			Attribute: puzzle.GivensAttribute,
			Values:    puzzle.ErrorData{spec.Kind, "a clue grid is required"},
		}
	}
	grid := puzzle.NewGrid(spec.Height, spec.Width)
	rules := &shadeRules{}
	for r, row := range spec.Givens {
		for c, count := range row {
			if count < 0 {
				continue
			}
			if count < 1 || count > spec.Height+spec.Width-1 {
				return nil, puzzle.Error{
					Scope:     puzzle.CellScope,
					Condition: puzzle.OutOfRangeCondition,
					Attribute: puzzle.ValueAttribute,
					Values:    puzzle.ErrorData{puzzle.Coord{Row: r, Col: c}, count},
				}
			}
			// numbered cells are white by definition
			cell := grid.At(r, c)
			cell.Value = ShadeWhite
			cell.Given = true
			rules.clues = append(rules.clues, sightClue{rc: puzzle.Coord{Row: r, Col: c}, count: count})
		}
	}
	return &Setup{
		Grid:     grid,
		Alphabet: 2,
		Plugin:   rules,
	}, nil
}

var rays = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// sightBounds computes the certain and potential visibility of a
// clue: minimum counts only contiguous assigned-white cells, maximum
// counts everything not yet blocked by black.  The override lets the
// legality check ask "and if this cell became v?" without touching
// the grid.
func (sr *shadeRules) sightBounds(st *State, clue sightClue, override puzzle.Coord, v int) (int, int) {
	at := func(r, c int) int {
		if override.Row == r && override.Col == c {
			return v
		}
		return st.Grid.Value(r, c)
	}
	min, max := 1, 1
	for _, d := range rays {
		blocked := false
		for r, c := clue.rc.Row+d[0], clue.rc.Col+d[1]; st.Grid.In(r, c); r, c = r+d[0], c+d[1] {
			cv := at(r, c)
			if cv == ShadeBlack {
				break
			}
			if cv == ShadeWhite && !blocked {
				min++
			} else {
				blocked = true
			}
			max++
		}
	}
	return min, max
}

// clueFeasible checks every clue sharing a row or column with rc
// against its bounds, assuming rc holds v.
func (sr *shadeRules) clueFeasible(st *State, rc puzzle.Coord, v int) bool {
	for _, clue := range sr.clues {
		if clue.rc.Row != rc.Row && clue.rc.Col != rc.Col {
			continue
		}
		min, max := sr.sightBounds(st, clue, rc, v)
		if min > clue.count || max < clue.count {
			return false
		}
	}
	return true
}

func (sr *shadeRules) Valid(st *State, rc puzzle.Coord, v int) bool {
	if v == ShadeBlack {
		for _, d := range rays {
			r, c := rc.Row+d[0], rc.Col+d[1]
			if st.Grid.In(r, c) && st.Grid.Value(r, c) == ShadeBlack {
				return false
			}
		}
	}
	return sr.clueFeasible(st, rc, v)
}

func (sr *shadeRules) Candidates(st *State, rc puzzle.Coord) puzzle.ValueSet {
	s := puzzle.NewValueSet(ShadeWhite, ShadeBlack)
	for _, v := range []int{ShadeWhite, ShadeBlack} {
		if !sr.Valid(st, rc, v) {
			s.Remove(v)
		}
	}
	return s
}

// Propagate forces the deductions that follow from a clue's bounds
// meeting its count.  When the potential visibility is already down
// to the count, every cell the clue can still see must stay white.
// When the certain visibility has reached the count, the cell just
// past each white run must turn black, or the count would grow.
func (sr *shadeRules) Propagate(st *State) int {
	removed := 0
	for _, clue := range sr.clues {
		min, max := sr.sightBounds(st, clue, puzzle.Coord{Row: -1, Col: -1}, 0)
		if max == clue.count {
			for _, d := range rays {
				for r, c := clue.rc.Row+d[0], clue.rc.Col+d[1]; st.Grid.In(r, c); r, c = r+d[0], c+d[1] {
					if st.Grid.Value(r, c) == ShadeBlack {
						break
					}
					rc := puzzle.Coord{Row: r, Col: c}
					if st.Tracked(rc) && st.RemoveCandidate(rc, ShadeBlack) {
						removed++
					}
				}
			}
		}
		if min == clue.count {
			for _, d := range rays {
				r, c := clue.rc.Row+d[0], clue.rc.Col+d[1]
				for st.Grid.In(r, c) && st.Grid.Value(r, c) == ShadeWhite {
					r, c = r+d[0], c+d[1]
				}
				rc := puzzle.Coord{Row: r, Col: c}
				if st.Grid.In(r, c) && st.Tracked(rc) && st.RemoveCandidate(rc, ShadeWhite) {
					removed++
				}
			}
		}
	}
	return removed
}

func (sr *shadeRules) LeafValid(st *State) bool {
	for _, clue := range sr.clues {
		min, _ := sr.sightBounds(st, clue, puzzle.Coord{Row: -1, Col: -1}, 0)
		if min != clue.count {
			return false
		}
	}
	return Connected(st.Grid, ShadeWhite)
}

// Weight prefers cells that more clues can see, since deciding them
// constrains more counts at once.
func (sr *shadeRules) Weight(rc puzzle.Coord) int {
	w := 0
	for _, clue := range sr.clues {
		if clue.rc.Row == rc.Row || clue.rc.Col == rc.Col {
			w++
		}
	}
	return w
}
