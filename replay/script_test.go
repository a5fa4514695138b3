package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gridbot/puzzle"
	"gridbot/solve"
)

func solved(g *puzzle.Grid) *solve.Solution {
	return &solve.Solution{Result: solve.Solved, Grid: g}
}

func TestScriptWritesSkipGivens(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Sudoku, Height: 2, Width: 2,
		Givens: [][]int{{1, 0}, {0, 2}},
	}
	sol := solved(puzzle.NewGridValues([][]int{{1, 2}, {2, 1}}))

	steps, err := NewScripter(1).Script(spec, sol)
	require.NoError(t, err)
	require.Len(t, steps, 2, "only the two open cells get writes")
	require.Equal(t, WriteAction, steps[0].Kind)
	require.Equal(t, puzzle.Coord{Row: 0, Col: 1}, steps[0].Cell)
	require.Equal(t, byte('2'), steps[0].Key)
	require.Equal(t, puzzle.Coord{Row: 1, Col: 0}, steps[1].Cell)
	require.Equal(t, byte('2'), steps[1].Key)
}

func TestValueKey(t *testing.T) {
	require.Equal(t, byte('7'), ValueKey(7))
	require.Equal(t, byte('9'), ValueKey(9))
	require.Equal(t, byte('a'), ValueKey(10), "values past 9 continue through letters")
	require.Equal(t, byte('g'), ValueKey(16))
}

func TestScriptTapsBlackCells(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Kurodoko, Height: 2, Width: 2,
		Givens: [][]int{{2, -1}, {-1, -1}},
	}
	sol := solved(puzzle.NewGridValues([][]int{
		{solve.ShadeWhite, solve.ShadeBlack},
		{solve.ShadeWhite, solve.ShadeWhite},
	}))

	steps, err := NewScripter(1).Script(spec, sol)
	require.NoError(t, err)
	require.Len(t, steps, 1, "only black cells need a tap")
	require.Equal(t, TapAction, steps[0].Kind)
	require.Equal(t, puzzle.Coord{Row: 0, Col: 1}, steps[0].Cell)
	require.Equal(t, 1, steps[0].Count)
}

func TestScriptTapsFilledCells(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Kakurasu, Height: 2, Width: 2,
		Left: []int{1, 2}, Top: []int{3, 0},
	}
	sol := solved(puzzle.NewGridValues([][]int{
		{solve.TallyFill, solve.TallyEmpty},
		{solve.TallyFill, solve.TallyEmpty},
	}))

	steps, err := NewScripter(1).Script(spec, sol)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	require.Equal(t, puzzle.Coord{Row: 0, Col: 0}, steps[0].Cell)
	require.Equal(t, puzzle.Coord{Row: 1, Col: 0}, steps[1].Cell)
}

func TestScriptStrokes(t *testing.T) {
	// the perimeter of a single cell
	walls := puzzle.NewWallMap(1, 1)
	walls.Horizontal[0][0] = true
	walls.Horizontal[1][0] = true
	walls.Vertical[0][0] = true
	walls.Vertical[0][1] = true
	spec := &puzzle.Spec{Kind: puzzle.SlitherLink, Height: 1, Width: 1}
	sol := &solve.Solution{Result: solve.Solved, Walls: walls}

	steps, err := NewScripter(1).Script(spec, sol)
	require.NoError(t, err)
	require.Len(t, steps, 4)
	for _, st := range steps {
		require.Equal(t, StrokeAction, st.Kind)
	}
	// horizontals first, in reading order
	require.Equal(t, puzzle.Coord{Row: 0, Col: 0}, steps[0].From)
	require.Equal(t, puzzle.Coord{Row: 0, Col: 1}, steps[0].To)
	require.Equal(t, puzzle.Coord{Row: 1, Col: 0}, steps[1].From)
	require.Equal(t, puzzle.Coord{Row: 1, Col: 1}, steps[1].To)
	// then verticals
	require.Equal(t, puzzle.Coord{Row: 0, Col: 0}, steps[2].From)
	require.Equal(t, puzzle.Coord{Row: 1, Col: 0}, steps[2].To)
}

func TestScriptDelaysAreJittered(t *testing.T) {
	spec := &puzzle.Spec{
		Kind: puzzle.Sudoku, Height: 3, Width: 3,
		Givens: [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	}
	sol := solved(puzzle.NewGridValues([][]int{
		{1, 2, 3}, {2, 3, 1}, {3, 1, 2},
	}))

	steps, err := NewScripter(42).Script(spec, sol)
	require.NoError(t, err)
	require.Len(t, steps, 9)
	distinct := map[time.Duration]bool{}
	for _, st := range steps {
		require.GreaterOrEqual(t, st.Delay, MinDelay)
		require.LessOrEqual(t, st.Delay, MaxDelay)
		distinct[st.Delay] = true
	}
	require.Greater(t, len(distinct), 1, "delays must vary")
	require.Equal(t, Duration(steps), sumDelays(steps))
}

func sumDelays(steps []Step) time.Duration {
	var total time.Duration
	for _, st := range steps {
		total += st.Delay
	}
	return total
}

func TestScriptRejectsUnsolved(t *testing.T) {
	spec := &puzzle.Spec{Kind: puzzle.Sudoku, Height: 1, Width: 1}
	_, err := NewScripter(1).Script(spec, &solve.Solution{Result: solve.Unsatisfiable})
	require.Error(t, err)
}
