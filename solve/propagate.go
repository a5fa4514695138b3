package solve

import (
	"gridbot/puzzle"
)

/*

Constraint propagation

Before every guess the driver rebuilds the candidate cache from the
current grid and runs the elimination techniques to a fixpoint.
Rebuilding from scratch at each node keeps restore-on-backtrack
trivial: undoing a guess is unassigning one cell, and the next
rebuild recomputes everything the guess had narrowed.

The generic techniques work on uniqueness units only.  Sum units and
anything family-specific run inside the plugin's Propagate.

*/

// rebuild recomputes the candidate cache for the still-open cells
// (order[from:]).  It reports false when some cell has no candidates
// at all, which the driver treats as a contradiction.
func (st *State) rebuild(from int) bool {
	for i := range st.tracked {
		st.tracked[i] = false
		st.cands[i] = 0
	}
	ok := true
	for _, rc := range st.order[from:] {
		i := st.cell(rc)
		st.cands[i] = st.Plugin.Candidates(st, rc)
		st.tracked[i] = true
		if st.cands[i].Empty() {
			ok = false
		}
	}
	return ok
}

// fixpoint runs the elimination techniques in rounds until a round
// eliminates nothing.  It reports false on a contradiction: a cell
// with an empty candidate set, or a unit that can no longer place
// one of its values.
func (st *State) fixpoint() bool {
	for {
		removed, ok := st.hiddenSingles()
		if !ok {
			return false
		}
		removed += st.nakedSubsets()
		removed += st.pointing()
		removed += st.Plugin.Propagate(st)
		if !st.consistent() {
			return false
		}
		if removed == 0 {
			return true
		}
	}
}

// consistent reports whether every tracked cell still has at least
// one candidate.
func (st *State) consistent() bool {
	for i, t := range st.tracked {
		if t && st.cands[i].Empty() {
			return false
		}
	}
	return true
}

// hiddenSingles collapses cells that are the only possible home for
// a value within a uniqueness unit.  For full units (as many cells
// as symbols) a value with no home at all is a contradiction, which
// the second return reports.
func (st *State) hiddenSingles() (int, bool) {
	removed := 0
	for ui := range st.Units {
		u := &st.Units[ui]
		if u.Kind != puzzle.UniqueUnit {
			continue
		}
		var assigned puzzle.ValueSet
		for _, rc := range u.Cells {
			if !st.Tracked(rc) {
				assigned.Add(st.Grid.Value(rc.Row, rc.Col))
			}
		}
		full := len(u.Cells) == st.alphabet
		for v := 1; v <= st.alphabet; v++ {
			if assigned.Has(v) {
				continue
			}
			var home puzzle.Coord
			count := 0
			for _, rc := range u.Cells {
				if st.Tracked(rc) && st.Candidates(rc).Has(v) {
					home = rc
					count++
					if count > 1 {
						break
					}
				}
			}
			switch {
			case count == 0 && full:
				return removed, false
			case count == 1:
				removed += st.SetCandidates(home, puzzle.NewValueSet(v))
			}
		}
	}
	return removed, true
}

// nakedSubsets finds k cells of a uniqueness unit whose candidate
// sets union to exactly k values and eliminates those values from
// the unit's other cells.  k runs from 1 (a plain naked single) up
// to the configured bound.
func (st *State) nakedSubsets() int {
	removed := 0
	for ui := range st.Units {
		u := &st.Units[ui]
		if u.Kind != puzzle.UniqueUnit {
			continue
		}
		var open []puzzle.Coord
		for _, rc := range u.Cells {
			if st.Tracked(rc) {
				open = append(open, rc)
			}
		}
		kmax := st.opts.NakedSubsetMax
		if kmax > len(open)-1 {
			kmax = len(open) - 1
		}
		for k := 1; k <= kmax; k++ {
			removed += st.nakedSubsetsK(open, k)
		}
	}
	return removed
}

// nakedSubsetsK enumerates the k-subsets of a unit's open cells,
// pruning branches whose running union already exceeds k values.
func (st *State) nakedSubsetsK(open []puzzle.Coord, k int) int {
	removed := 0
	subset := make([]int, 0, k)
	var walk func(start int, union puzzle.ValueSet)
	walk = func(start int, union puzzle.ValueSet) {
		if len(subset) == k {
			if union.Len() != k {
				return
			}
			for i, rc := range open {
				member := false
				for _, si := range subset {
					if si == i {
						member = true
						break
					}
				}
				if !member {
					removed += st.SetCandidates(rc, st.Candidates(rc).Subtract(union))
				}
			}
			return
		}
		for i := start; i < len(open); i++ {
			next := union.Union(st.Candidates(open[i]))
			if next.Len() > k {
				continue
			}
			subset = append(subset, i)
			walk(i+1, next)
			subset = subset[:len(subset)-1]
		}
	}
	walk(0, 0)
	return removed
}

// pointing runs the two box/line interaction techniques over the
// region map: a value confined to one row or column of a box leaves
// the rest of that line, and a value confined to one box within a
// line leaves the rest of that box.
func (st *State) pointing() int {
	if st.Boxes == nil {
		return 0
	}
	removed := 0
	for id := 0; id < st.Boxes.Count(); id++ {
		for v := 1; v <= st.alphabet; v++ {
			row, col := -1, -1
			sameRow, sameCol := true, true
			found := false
			for _, rc := range st.Boxes.Cells(id) {
				if !st.Tracked(rc) || !st.Candidates(rc).Has(v) {
					continue
				}
				if !found {
					row, col = rc.Row, rc.Col
					found = true
					continue
				}
				sameRow = sameRow && rc.Row == row
				sameCol = sameCol && rc.Col == col
			}
			if !found {
				continue
			}
			if sameRow {
				for c := 0; c < st.Grid.Width; c++ {
					rc := puzzle.Coord{Row: row, Col: c}
					if st.Boxes.ID(row, c) != id && st.Tracked(rc) && st.Candidates(rc).Has(v) {
						if st.RemoveCandidate(rc, v) {
							removed++
						}
					}
				}
			}
			if sameCol {
				for r := 0; r < st.Grid.Height; r++ {
					rc := puzzle.Coord{Row: r, Col: col}
					if st.Boxes.ID(r, col) != id && st.Tracked(rc) && st.Candidates(rc).Has(v) {
						if st.RemoveCandidate(rc, v) {
							removed++
						}
					}
				}
			}
		}
	}
	removed += st.claiming()
	return removed
}

// claiming is the line-to-box direction: when all of a line's homes
// for a value sit inside one box, the value leaves the box's cells
// off that line.
func (st *State) claiming() int {
	removed := 0
	scan := func(line []puzzle.Coord) {
		for v := 1; v <= st.alphabet; v++ {
			box := -1
			confined := true
			for _, rc := range line {
				if !st.Tracked(rc) || !st.Candidates(rc).Has(v) {
					continue
				}
				id := st.Boxes.ID(rc.Row, rc.Col)
				if box == -1 {
					box = id
				} else if id != box {
					confined = false
					break
				}
			}
			if box == -1 || !confined {
				continue
			}
			for _, rc := range st.Boxes.Cells(box) {
				onLine := false
				for _, lc := range line {
					if lc == rc {
						onLine = true
						break
					}
				}
				if !onLine && st.Tracked(rc) && st.RemoveCandidate(rc, v) {
					removed++
				}
			}
		}
	}
	for r := 0; r < st.Grid.Height; r++ {
		line := make([]puzzle.Coord, st.Grid.Width)
		for c := range line {
			line[c] = puzzle.Coord{Row: r, Col: c}
		}
		scan(line)
	}
	for c := 0; c < st.Grid.Width; c++ {
		line := make([]puzzle.Coord, st.Grid.Height)
		for r := range line {
			line[r] = puzzle.Coord{Row: r, Col: c}
		}
		scan(line)
	}
	return removed
}
