package solve

import (
	"context"
	"reflect"
	"testing"

	"gridbot/puzzle"
)

func TestKurodoko(t *testing.T) {
	// the clue at (1,0) forces its whole row white, which pins the
	// blacks to (0,1) and (2,1)
	spec := &puzzle.Spec{
		Kind: puzzle.Kurodoko, Height: 3, Width: 3,
		Givens: [][]int{
			{3, -1, -1},
			{5, 3, -1},
			{-1, -1, 3},
		},
	}
	sol := mustSolve(t, spec, Options{})
	expected := [][]int{
		{ShadeWhite, ShadeBlack, ShadeWhite},
		{ShadeWhite, ShadeWhite, ShadeWhite},
		{ShadeWhite, ShadeBlack, ShadeWhite},
	}
	if !reflect.DeepEqual(sol.Grid.Values(), expected) {
		t.Errorf("wrong shading:\n%v", sol.Grid)
	}
	if !Connected(sol.Grid, ShadeWhite) {
		t.Error("white cells are not connected")
	}
}

func TestKurodokoBlackAdjacencyRejected(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Kurodoko, Height: 3, Width: 3,
		Givens: [][]int{
			{3, -1, -1},
			{5, 3, -1},
			{-1, -1, 3},
		},
	}
	st := newTestState(t, spec)
	st.Grid.At(0, 1).Value = ShadeBlack
	sr := st.Plugin.(*shadeRules)
	if sr.Valid(st, coord(1, 1), ShadeBlack) {
		t.Error("a black next to a black was allowed")
	}
}

func TestSightBounds(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Kurodoko, Height: 3, Width: 3,
		Givens: [][]int{
			{-1, -1, -1},
			{-1, 5, -1},
			{-1, -1, -1},
		},
	}
	st := newTestState(t, spec)
	sr := st.Plugin.(*shadeRules)
	clue := sr.clues[0]

	// nothing decided: only the clue cell is certain, everything is
	// potentially visible
	min, max := sr.sightBounds(st, clue, coord(-1, -1), 0)
	if min != 1 || max != 5 {
		t.Errorf("open board bounds: got (%d, %d), expected (1, 5)", min, max)
	}

	// a black to the right cuts the potential count
	st.Grid.At(1, 2).Value = ShadeBlack
	min, max = sr.sightBounds(st, clue, coord(-1, -1), 0)
	if min != 1 || max != 4 {
		t.Errorf("after a black: got (%d, %d), expected (1, 4)", min, max)
	}

	// a white above becomes certain
	st.Grid.At(0, 1).Value = ShadeWhite
	min, max = sr.sightBounds(st, clue, coord(-1, -1), 0)
	if min != 2 || max != 4 {
		t.Errorf("after a white: got (%d, %d), expected (2, 4)", min, max)
	}
}

func TestKurodokoUnsatisfiableClue(t *testing.T) {
	// a count-1 clue isolates its cell from the white area
	spec := &puzzle.Spec{
		Kind: puzzle.Kurodoko, Height: 3, Width: 3,
		Givens: [][]int{
			{-1, -1, -1},
			{-1, 1, -1},
			{-1, -1, -1},
		},
	}
	st := newTestState(t, spec)
	if sol := st.Solve(context.Background()); sol.Result != Unsatisfiable {
		t.Errorf("got %v, expected %v", sol.Result, Unsatisfiable)
	}
}
