package solve

import (
	"gridbot/puzzle"
)

/*

Tally family

Kakurasu fills cells so that each row and column reaches a target
weighted sum: a filled cell adds its 1-based column number to its
row's total and its 1-based row number to its column's total.  The
engine alphabet has two values, filled and excluded, and the heavy
lifting is the line enumeration: walk every completion of a line
that hits the target and keep only the decisions common to all of
them.

*/

// The tally alphabet.
const (
	TallyFill  = 1
	TallyEmpty = 2
)

type tallyRules struct {
	rows, cols []int // target weighted sums per line
}

func init() {
	RegisterFamily(&Family{Kind: puzzle.Kakurasu, New: newTallySetup})
}

func newTallySetup(spec *puzzle.Spec) (*Setup, error) {
	rules := &tallyRules{rows: spec.Left, cols: spec.Top}
	if rules.rows == nil {
		rules.rows = make([]int, spec.Height)
	}
	if rules.cols == nil {
		rules.cols = make([]int, spec.Width)
	}
	maxRow := spec.Width * (spec.Width + 1) / 2
	for r, t := range rules.rows {
		if t < 0 || t > maxRow {
			return nil, puzzle.Error{
				Scope:     puzzle.SpecScope,
				Condition: puzzle.OutOfRangeCondition,
				Attribute: puzzle.BorderAttribute,
				Values:    puzzle.ErrorData{r, t},
			}
		}
	}
	maxCol := spec.Height * (spec.Height + 1) / 2
	for c, t := range rules.cols {
		if t < 0 || t > maxCol {
			return nil, puzzle.Error{
				Scope:     puzzle.SpecScope,
				Condition: puzzle.OutOfRangeCondition,
				Attribute: puzzle.BorderAttribute,
				Values:    puzzle.ErrorData{c, t},
			}
		}
	}
	var grid *puzzle.Grid
	if spec.Givens != nil {
		grid = puzzle.NewGridValues(spec.Givens)
	} else {
		grid = puzzle.NewGrid(spec.Height, spec.Width)
	}
	return &Setup{
		Grid:     grid,
		Alphabet: 2,
		Plugin:   rules,
	}, nil
}

// lineSums totals a line's committed weight and the weight still
// undecided, with weights 1..n along the line.  The override treats
// one position as holding v.
func lineSums(line []int, overridePos, v int) (fixed, open int) {
	for pos, state := range line {
		if pos == overridePos {
			state = v
		}
		switch state {
		case TallyFill:
			fixed += pos + 1
		case 0:
			open += pos + 1
		}
	}
	return fixed, open
}

func (tr *tallyRules) lineAt(st *State, rc puzzle.Coord, horizontal bool) ([]int, int, int) {
	if horizontal {
		line := make([]int, st.Grid.Width)
		for c := range line {
			line[c] = st.Grid.Value(rc.Row, c)
		}
		return line, tr.rows[rc.Row], rc.Col
	}
	line := make([]int, st.Grid.Height)
	for r := range line {
		line[r] = st.Grid.Value(r, rc.Col)
	}
	return line, tr.cols[rc.Col], rc.Row
}

func (tr *tallyRules) Valid(st *State, rc puzzle.Coord, v int) bool {
	for _, horizontal := range []bool{true, false} {
		line, target, pos := tr.lineAt(st, rc, horizontal)
		fixed, open := lineSums(line, pos, v)
		if fixed > target || fixed+open < target {
			return false
		}
	}
	return true
}

func (tr *tallyRules) Candidates(st *State, rc puzzle.Coord) puzzle.ValueSet {
	s := puzzle.NewValueSet(TallyFill, TallyEmpty)
	if !tr.Valid(st, rc, TallyFill) {
		s.Remove(TallyFill)
	}
	if !tr.Valid(st, rc, TallyEmpty) {
		s.Remove(TallyEmpty)
	}
	return s
}

// Propagate runs the common-value deduction on every line: among
// all completions that hit the target, a position decided the same
// way in each of them is decided, full stop.
func (tr *tallyRules) Propagate(st *State) int {
	removed := 0
	for r := 0; r < st.Grid.Height; r++ {
		removed += tr.filterLine(st, puzzle.Coord{Row: r, Col: 0}, true)
	}
	for c := 0; c < st.Grid.Width; c++ {
		removed += tr.filterLine(st, puzzle.Coord{Row: 0, Col: c}, false)
	}
	return removed
}

func (tr *tallyRules) filterLine(st *State, rc puzzle.Coord, horizontal bool) int {
	line, target, _ := tr.lineAt(st, rc, horizontal)
	// candidate-aware states: a cell whose set already collapsed
	// counts as decided even before the driver assigns it
	for pos := range line {
		cell := rc
		if horizontal {
			cell.Col = pos
		} else {
			cell.Row = pos
		}
		if line[pos] == 0 && st.Tracked(cell) {
			if v, one := st.Candidates(cell).Single(); one {
				line[pos] = v
			}
		}
	}
	feasible := enumerateLine(line, target)
	removed := 0
	for pos, s := range feasible {
		cell := rc
		if horizontal {
			cell.Col = pos
		} else {
			cell.Row = pos
		}
		if st.Tracked(cell) {
			removed += st.SetCandidates(cell, s)
		}
	}
	return removed
}

// enumerateLine walks the completions of a line summing to target
// and unions each position's surviving decisions.  Decided positions
// pass through unchanged; a contradictory line comes back with empty
// sets on its open positions.
func enumerateLine(line []int, target int) []puzzle.ValueSet {
	out := make([]puzzle.ValueSet, len(line))
	trial := append([]int(nil), line...)
	fixed, open := lineSums(line, -1, 0)

	var walk func(pos, sum, slack int)
	walk = func(pos, sum, slack int) {
		if sum > target || sum+slack < target {
			return
		}
		if pos == len(line) {
			for i, v := range trial {
				out[i].Add(v)
			}
			return
		}
		if line[pos] != 0 {
			walk(pos+1, sum, slack)
			return
		}
		weight := pos + 1
		trial[pos] = TallyFill
		walk(pos+1, sum+weight, slack-weight)
		trial[pos] = TallyEmpty
		walk(pos+1, sum, slack-weight)
		trial[pos] = 0
	}
	walk(0, fixed, open)

	for i, s := range out {
		if line[i] != 0 {
			// decided positions keep their decision
			s = puzzle.NewValueSet(line[i])
		}
		out[i] = s
	}
	return out
}

func (tr *tallyRules) LeafValid(st *State) bool {
	for r, target := range tr.rows {
		sum := 0
		for c := 0; c < st.Grid.Width; c++ {
			if st.Grid.Value(r, c) == TallyFill {
				sum += c + 1
			}
		}
		if sum != target {
			return false
		}
	}
	for c, target := range tr.cols {
		sum := 0
		for r := 0; r < st.Grid.Height; r++ {
			if st.Grid.Value(r, c) == TallyFill {
				sum += r + 1
			}
		}
		if sum != target {
			return false
		}
	}
	return true
}
