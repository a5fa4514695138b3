package solve

import (
	"context"
	"sort"
	"time"

	"gridbot/puzzle"
)

/*

Backtracking search

The driver is an explicit-stack depth-first search.  Each stack
frame is one open cell with its untried values; descending pushes a
frame, exhausting one pops it.  An explicit stack instead of
recursion keeps deep searches off the goroutine stack and makes the
cancellation and progress checkpoints obvious.

*/

// A frame is one level of the search: which cell the level decided,
// the value currently applied, and the values not yet tried.
type frame struct {
	idx     int
	rc      puzzle.Coord
	value   int
	untried []int
}

// Solve runs the search to completion or cancellation.  The context
// is checked once per search node, between propagation and the next
// guess, so cancellation latency is one propagation pass.
func (st *State) Solve(ctx context.Context) *Solution {
	st.started = time.Now()
	stop := st.startReporter()
	defer stop()

	inc, _ := st.Plugin.(Incremental)
	var stack []frame
	idx := 0

	for {
		if ctx.Err() != nil {
			return st.finish(Cancelled)
		}
		st.stats.Nodes++
		st.observe(false)

		ok := st.rebuild(idx) && st.fixpoint()
		if ok && idx < len(st.order) && st.memo.dead(st.Grid) {
			st.stats.MemoHits++
			ok = false
		}
		if ok && idx == len(st.order) {
			if st.verify() {
				return st.finish(Solved)
			}
			ok = false
		}
		if ok {
			st.resort(idx)
			rc := st.order[idx]
			f := frame{idx: idx, rc: rc, untried: st.Candidates(rc).Values()}
			if st.advance(&f, inc) {
				stack = append(stack, f)
				idx = f.idx + 1
				continue
			}
			ok = false
		}

		// Backtrack to the nearest frame with an untried value.
		for {
			if len(stack) == 0 {
				return st.finish(Unsatisfiable)
			}
			f := &stack[len(stack)-1]
			st.unassign(f, inc)
			st.stats.Backtracks++
			if st.advance(f, inc) {
				idx = f.idx + 1
				break
			}
			// Every value failed here, so the board state entering
			// this node can never extend to a solution.
			st.memo.mark(st.Grid)
			stack = stack[:len(stack)-1]
		}
	}
}

// advance tries the frame's untried values in order until one passes
// the plugin's legality check and (for incremental plugins) applies
// cleanly.  On success the value is assigned to the grid.
func (st *State) advance(f *frame, inc Incremental) bool {
	for len(f.untried) > 0 {
		v := f.untried[0]
		f.untried = f.untried[1:]
		st.stats.Guesses++
		if !st.Plugin.Valid(st, f.rc, v) {
			continue
		}
		if inc != nil && !inc.Apply(st, f.rc, v) {
			continue
		}
		st.Grid.At(f.rc.Row, f.rc.Col).Value = v
		f.value = v
		return true
	}
	return false
}

// unassign undoes a frame's applied value.
func (st *State) unassign(f *frame, inc Incremental) {
	st.Grid.At(f.rc.Row, f.rc.Col).Value = 0
	if inc != nil {
		inc.Retract(st, f.rc, f.value)
	}
}

// resort moves the most constrained open cell to position idx.  Full
// sorts happen once per ResortBatch nodes; in between a linear
// min-scan is enough, since only the front cell is consumed.
func (st *State) resort(idx int) {
	w, _ := st.Plugin.(Weighted)
	less := func(a, b puzzle.Coord) bool {
		la, lb := st.Candidates(a).Len(), st.Candidates(b).Len()
		if la != lb {
			return la < lb
		}
		if w != nil {
			return w.Weight(a) > w.Weight(b)
		}
		return false
	}
	open := st.order[idx:]
	if st.stats.Nodes-st.lastSort >= int64(st.opts.ResortBatch) {
		sort.SliceStable(open, func(i, j int) bool { return less(open[i], open[j]) })
		st.lastSort = st.stats.Nodes
		return
	}
	best := 0
	for i := 1; i < len(open); i++ {
		if less(open[i], open[best]) {
			best = i
		}
	}
	open[0], open[best] = open[best], open[0]
}

// verify checks a complete assignment against every unit and the
// plugin's global invariants.  Guess-time legality checks make this
// nearly always true; it stays as the final word because some
// invariants (connectivity, loop shape) are only meaningful here.
func (st *State) verify() bool {
	for ui := range st.Units {
		u := &st.Units[ui]
		switch u.Kind {
		case puzzle.UniqueUnit:
			var seen puzzle.ValueSet
			for _, rc := range u.Cells {
				v := st.Grid.Value(rc.Row, rc.Col)
				if seen.Has(v) {
					return false
				}
				seen.Add(v)
			}
		case puzzle.SumUnit:
			sum := 0
			for _, rc := range u.Cells {
				sum += st.Grid.Value(rc.Row, rc.Col)
			}
			if sum != u.Target {
				return false
			}
		}
	}
	return st.Plugin.LeafValid(st)
}

// finish stamps the stats and assembles the Solution.
func (st *State) finish(res Result) *Solution {
	st.stats.Elapsed = time.Since(st.started)
	sol := &Solution{Result: res, Stats: st.stats}
	if res != Solved {
		return sol
	}
	if wm, ok := st.Plugin.(WallMapper); ok {
		sol.Walls = wm.Walls(st)
	} else {
		sol.Grid = st.Grid.Copy()
	}
	return sol
}
