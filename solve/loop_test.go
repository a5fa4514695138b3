package solve

import (
	"context"
	"testing"

	"gridbot/puzzle"
)

func TestSlitherLinkOneByTwo(t *testing.T) {
	// both cells need three edges, so the loop must run around the
	// outside and skip the shared middle edge
	spec := &puzzle.Spec{
		Kind: puzzle.SlitherLink, Height: 1, Width: 2,
		Givens: [][]int{{3, 3}},
	}
	sol := mustSolve(t, spec, Options{})
	if sol.Walls == nil {
		t.Fatal("loop solution carries no wall map")
	}
	m := sol.Walls
	for c := 0; c < 2; c++ {
		if !m.Horizontal[0][c] || !m.Horizontal[1][c] {
			t.Errorf("perimeter horizontal edge missing in column %d", c)
		}
	}
	if !m.Vertical[0][0] || !m.Vertical[0][2] {
		t.Error("perimeter vertical edge missing")
	}
	if m.Vertical[0][1] {
		t.Error("the shared middle edge should be off")
	}
	if m.CellEdges(0, 0) != 3 || m.CellEdges(0, 1) != 3 {
		t.Error("cell edge counts don't match the clues")
	}
}

func TestSlitherLinkTwoByTwo(t *testing.T) {
	// a lone 3 in an otherwise free grid still has solutions; any
	// one of them must be a single closed loop honoring the clue
	spec := &puzzle.Spec{
		Kind: puzzle.SlitherLink, Height: 2, Width: 2,
		Givens: [][]int{
			{3, -1},
			{-1, 3},
		},
	}
	sol := mustSolve(t, spec, Options{})
	m := sol.Walls
	if got := m.CellEdges(0, 0); got != 3 {
		t.Errorf("clue cell (0,0) has %d edges, expected 3", got)
	}
	if got := m.CellEdges(1, 1); got != 3 {
		t.Errorf("clue cell (1,1) has %d edges, expected 3", got)
	}
	// every lattice vertex must have an even loop degree
	for r := 0; r <= 2; r++ {
		for c := 0; c <= 2; c++ {
			deg := 0
			if c < 2 && m.Horizontal[r][c] {
				deg++
			}
			if c > 0 && m.Horizontal[r][c-1] {
				deg++
			}
			if r < 2 && m.Vertical[r][c] {
				deg++
			}
			if r > 0 && m.Vertical[r-1][c] {
				deg++
			}
			if deg != 0 && deg != 2 {
				t.Errorf("vertex (%d,%d) has loop degree %d", r, c, deg)
			}
		}
	}
}

func TestSlitherLinkUnsatisfiable(t *testing.T) {
	// a single cell cannot be surrounded by only three loop edges:
	// the loop either rings it (four) or avoids it (zero)
	spec := &puzzle.Spec{
		Kind: puzzle.SlitherLink, Height: 1, Width: 1,
		Givens: [][]int{{3}},
	}
	st, err := New(spec, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sol := st.Solve(context.Background())
	if sol.Result != Unsatisfiable {
		t.Errorf("got %v, expected %v", sol.Result, Unsatisfiable)
	}
	// nothing rules the clue out before search, so proving there is
	// no loop must have unwound at least one guess
	if sol.Stats.Backtracks == 0 {
		t.Error("exhausting the search space recorded no backtracks")
	}
}

func TestLoopRejectsEarlyCycle(t *testing.T) {
	// draw three sides of the left cell of a 1x2 board, then check
	// that closing that small cycle is rejected while an undecided
	// edge remains reachable elsewhere
	spec := &puzzle.Spec{
		Kind: puzzle.SlitherLink, Height: 1, Width: 2,
		Givens: [][]int{{-1, -1}},
	}
	st := newTestState(t, spec)
	lr := st.Plugin.(*loopRules)

	// edge ids: horizontals (0,0)=0, (0,1)=1, (1,0)=2, (1,1)=3,
	// then verticals (0,0)=4, (0,1)=5, (0,2)=6
	for _, i := range []int{0, 4, 2} {
		rc := coord(0, i)
		if !lr.Valid(st, rc, EdgeOn) {
			t.Fatalf("edge %d unexpectedly invalid", i)
		}
		if !lr.Apply(st, rc, EdgeOn) {
			t.Fatalf("edge %d unexpectedly rejected", i)
		}
		st.Grid.At(0, i).Value = EdgeOn
	}
	// the left cell's fourth side closes a cycle but leaves the
	// right cell's path fragments unusable only if they exist; here
	// nothing else is drawn, so closing is legal
	if !lr.Valid(st, coord(0, 5), EdgeOn) {
		t.Error("closing the only chain should be legal")
	}

	// add a stray edge on the right; now closing the left cycle
	// would strand it
	if !lr.Apply(st, coord(0, 6), EdgeOn) {
		t.Fatal("stray edge rejected")
	}
	st.Grid.At(0, 6).Value = EdgeOn
	if lr.Valid(st, coord(0, 5), EdgeOn) {
		t.Error("closing a cycle that strands another chain was allowed")
	}

	// retract the stray edge and closing is legal again
	st.Grid.At(0, 6).Value = 0
	lr.Retract(st, coord(0, 6), EdgeOn)
	if !lr.Valid(st, coord(0, 5), EdgeOn) {
		t.Error("retraction did not restore the closable state")
	}
}
