package solve

import (
	"golang.org/x/sync/errgroup"

	"gridbot/puzzle"
)

/*

Border visibility

Skyscraper clues count the values visible from a grid edge: a value
is visible when everything before it on the line is smaller.  The
rule has three layers: positional caps at rebuild (a clue of k bars
the tallest values from the cells nearest its edge), line-by-line
candidate filtering during propagation, and exact counts at the
leaf.

*/

type visibilityRule struct {
	baseRule
	n                        int
	top, bottom, left, right []int
}

func newVisibilityRule(spec *puzzle.Spec, n int) *visibilityRule {
	clues := func(side []int) []int {
		if side == nil {
			return make([]int, n)
		}
		return side
	}
	return &visibilityRule{
		n:      n,
		top:    clues(spec.Top),
		bottom: clues(spec.Bottom),
		left:   clues(spec.Left),
		right:  clues(spec.Right),
	}
}

// visibleCount counts the values seen from the front of a line.
func visibleCount(vals []int) int {
	seen, highest := 0, 0
	for _, v := range vals {
		if v > highest {
			highest = v
			seen++
		}
	}
	return seen
}

// reversed copies a slice back to front.
func reversed[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Narrow applies the positional caps: at distance d from a clue-k
// edge a cell can hold at most n-k+1+d, or the clue could never see
// enough values.
func (vr *visibilityRule) Narrow(st *State, rc puzzle.Coord, s puzzle.ValueSet) puzzle.ValueSet {
	capFrom := func(k, d int) {
		if k > 0 {
			s = s.Intersect(puzzle.NewValueSetRange(vr.n - k + 1 + d))
		}
	}
	capFrom(vr.left[rc.Row], rc.Col)
	capFrom(vr.right[rc.Row], vr.n-1-rc.Col)
	capFrom(vr.top[rc.Col], rc.Row)
	capFrom(vr.bottom[rc.Col], vr.n-1-rc.Row)
	return s
}

// Allows rejects a guess that completes a clue line with the wrong
// visible count.  Partial lines are left to Narrow and Propagate.
func (vr *visibilityRule) Allows(st *State, rc puzzle.Coord, v int) bool {
	row := make([]int, vr.n)
	complete := true
	for c := 0; c < vr.n; c++ {
		if c == rc.Col {
			row[c] = v
		} else if row[c] = st.Grid.Value(rc.Row, c); row[c] == 0 {
			complete = false
		}
	}
	if complete && !vr.lineOK(row, vr.left[rc.Row], vr.right[rc.Row]) {
		return false
	}
	col := make([]int, vr.n)
	complete = true
	for r := 0; r < vr.n; r++ {
		if r == rc.Row {
			col[r] = v
		} else if col[r] = st.Grid.Value(r, rc.Col); col[r] == 0 {
			complete = false
		}
	}
	return !complete || vr.lineOK(col, vr.top[rc.Col], vr.bottom[rc.Col])
}

func (vr *visibilityRule) lineOK(vals []int, front, back int) bool {
	if front > 0 && visibleCount(vals) != front {
		return false
	}
	return back <= 0 || visibleCount(reversed(vals)) == back
}

// Propagate enumerates each clue line's feasible fillings and keeps
// only the values that occur in at least one of them.
func (vr *visibilityRule) Propagate(st *State) int {
	removed := 0
	line := make([]puzzle.Coord, vr.n)
	for r := 0; r < vr.n; r++ {
		for c := range line {
			line[c] = puzzle.Coord{Row: r, Col: c}
		}
		removed += vr.filterLine(st, line, vr.left[r], vr.right[r])
	}
	for c := 0; c < vr.n; c++ {
		for r := range line {
			line[r] = puzzle.Coord{Row: r, Col: c}
		}
		removed += vr.filterLine(st, line, vr.top[c], vr.bottom[c])
	}
	return removed
}

// parallelLineMin is the line length from which the two directions
// of a double-clued line get their own goroutines.  Shorter lines
// enumerate faster than a goroutine handoff.
const parallelLineMin = 6

func (vr *visibilityRule) filterLine(st *State, line []puzzle.Coord, front, back int) int {
	if front <= 0 && back <= 0 {
		return 0
	}
	sets := make([]puzzle.ValueSet, len(line))
	for i, rc := range line {
		sets[i] = st.Candidates(rc)
	}

	forward, backward := sets, sets
	if front > 0 && back > 0 && vr.n >= parallelLineMin {
		var g errgroup.Group
		g.Go(func() error {
			forward = feasibleLine(sets, front)
			return nil
		})
		g.Go(func() error {
			backward = reversed(feasibleLine(reversed(sets), back))
			return nil
		})
		_ = g.Wait()
	} else {
		if front > 0 {
			forward = feasibleLine(sets, front)
		}
		if back > 0 {
			backward = reversed(feasibleLine(reversed(sets), back))
		}
	}

	removed := 0
	for i, rc := range line {
		if st.Tracked(rc) {
			removed += st.SetCandidates(rc, forward[i].Intersect(backward[i]))
		}
	}
	return removed
}

func (vr *visibilityRule) Leaf(st *State) bool {
	vals := make([]int, vr.n)
	for r := 0; r < vr.n; r++ {
		for c := range vals {
			vals[c] = st.Grid.Value(r, c)
		}
		if !vr.lineOK(vals, vr.left[r], vr.right[r]) {
			return false
		}
	}
	for c := 0; c < vr.n; c++ {
		for r := range vals {
			vals[r] = st.Grid.Value(r, c)
		}
		if !vr.lineOK(vals, vr.top[c], vr.bottom[c]) {
			return false
		}
	}
	return true
}

func (vr *visibilityRule) Weight(rc puzzle.Coord) int {
	w := 0
	for _, k := range []int{vr.left[rc.Row], vr.right[rc.Row], vr.top[rc.Col], vr.bottom[rc.Col]} {
		if k > 0 {
			w++
		}
	}
	return w
}

// feasibleLine enumerates the permutations of 1..n consistent with
// the per-position candidate sets and seen by the front clue exactly
// clue times, and returns the union of surviving values at each
// position.  A position's empty result set means the line is
// infeasible, which the caller surfaces as a contradiction.
func feasibleLine(sets []puzzle.ValueSet, clue int) []puzzle.ValueSet {
	n := len(sets)
	out := make([]puzzle.ValueSet, n)
	vals := make([]int, n)
	var used puzzle.ValueSet

	var walk func(pos, highest, seen int)
	walk = func(pos, highest, seen int) {
		if seen > clue || seen+(n-pos) < clue {
			return
		}
		if pos == n {
			if seen != clue {
				return
			}
			for i, v := range vals {
				out[i].Add(v)
			}
			return
		}
		for _, v := range sets[pos].Values() {
			if used.Has(v) {
				continue
			}
			used.Add(v)
			vals[pos] = v
			if v > highest {
				walk(pos+1, v, seen+1)
			} else {
				walk(pos+1, highest, seen)
			}
			used.Remove(v)
		}
	}
	walk(0, 0, 0)
	return out
}
