package solve

import (
	"testing"

	"gridbot/puzzle"
)

func newTestState(t *testing.T, spec *puzzle.Spec) *State {
	t.Helper()
	st, err := New(spec, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return st
}

func TestHiddenSingles(t *testing.T) {
	// 1 can only go in (0,0): the other row-0 cells see a 1 in
	// their columns
	spec := &puzzle.Spec{
		Kind: puzzle.Sudoku, Height: 4, Width: 4,
		Givens: [][]int{
			{0, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 0},
			{0, 1, 0, 0},
		},
	}
	st := newTestState(t, spec)
	if !st.rebuild(0) {
		t.Fatal("rebuild found a contradiction in a solvable grid")
	}
	if !st.fixpoint() {
		t.Fatal("fixpoint found a contradiction in a solvable grid")
	}
	got := st.Candidates(puzzle.Coord{Row: 0, Col: 0})
	// (0,3) also lacks a 1 in sight, so the single is not forced in
	// row 0 alone; but box 0 pins it: (0,1), (1,0), (1,1) all see a 1
	if got.Has(1) != true {
		t.Errorf("(0,0) lost candidate 1: %v", got.Values())
	}
	for _, rc := range []puzzle.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}} {
		if st.Candidates(rc).Has(1) {
			t.Errorf("%v still has candidate 1", rc)
		}
	}
}

func TestFixpointIdempotent(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Sudoku, Height: 9, Width: 9,
		Givens: func() [][]int {
			g := make([][]int, 9)
			for r := range g {
				g[r] = make([]int, 9)
			}
			g[0][0], g[1][3], g[2][6] = 5, 5, 5
			g[4][1], g[5][4], g[8][8] = 3, 3, 7
			return g
		}(),
	}
	st := newTestState(t, spec)
	if !st.rebuild(0) || !st.fixpoint() {
		t.Fatal("setup contradiction")
	}
	before := append([]puzzle.ValueSet(nil), st.cands...)
	elims := st.stats.Eliminations
	if !st.fixpoint() {
		t.Fatal("second fixpoint found a contradiction")
	}
	if st.stats.Eliminations != elims {
		t.Errorf("second fixpoint eliminated %d more candidates",
			st.stats.Eliminations-elims)
	}
	for i := range before {
		if st.cands[i] != before[i] {
			t.Errorf("cell %d changed between fixpoints: %v -> %v",
				i, before[i].Values(), st.cands[i].Values())
		}
	}
}

func TestNakedPairEliminates(t *testing.T) {
	// (0,2) and (0,3) can only hold 3 and 4, so (0,0) and (0,1)
	// cannot: a naked pair in row 0
	spec := &puzzle.Spec{
		Kind: puzzle.Sudoku, Height: 4, Width: 4,
		Givens: [][]int{
			{0, 0, 0, 0},
			{0, 0, 1, 2},
			{0, 0, 2, 1},
			{1, 2, 0, 0},
		},
	}
	st := newTestState(t, spec)
	if !st.rebuild(0) || !st.fixpoint() {
		t.Fatal("setup contradiction")
	}
	for _, tc := range []struct {
		rc   puzzle.Coord
		want []int
	}{
		{puzzle.Coord{Row: 0, Col: 2}, []int{3, 4}},
		{puzzle.Coord{Row: 0, Col: 3}, []int{3, 4}},
	} {
		got := st.Candidates(tc.rc).Values()
		if len(got) != 2 || got[0] != tc.want[0] || got[1] != tc.want[1] {
			t.Errorf("%v candidates: got %v, expected %v", tc.rc, got, tc.want)
		}
	}
	for _, rc := range []puzzle.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
		got := st.Candidates(rc)
		if got.Has(3) || got.Has(4) {
			t.Errorf("%v kept naked pair values: %v", rc, got.Values())
		}
	}
}

func TestRebuildDetectsStuckCell(t *testing.T) {
	// (0,0) sees all four values
	spec := &puzzle.Spec{
		Kind: puzzle.Sudoku, Height: 4, Width: 4,
		Givens: [][]int{
			{0, 1, 2, 3},
			{4, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
	}
	st := newTestState(t, spec)
	if st.rebuild(0) {
		t.Error("rebuild missed the empty candidate set at (0,0)")
	}
}
