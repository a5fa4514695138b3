package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gridbot/puzzle"
)

func TestKindFromPath(t *testing.T) {
	k, err := KindFromPath("/jigsaw-sudoku/daily")
	require.NoError(t, err)
	require.Equal(t, puzzle.JigsawSudoku, k)

	k, err = KindFromPath("kakurasu")
	require.NoError(t, err)
	require.Equal(t, puzzle.Kakurasu, k)

	_, err = KindFromPath("/crossword/daily")
	require.Error(t, err)
}

func TestBuildSudoku(t *testing.T) {
	// a solved 4x4 grid keeps literal values, letters become empties
	spec, err := BuildSpec(&Task{Kind: puzzle.Sudoku, Raw: "1a3a2b1d4c"})
	require.NoError(t, err)
	require.Equal(t, 4, spec.Height)
	require.Equal(t, [][]int{
		{1, 0, 3, 0},
		{2, 0, 0, 1},
		{0, 0, 0, 0},
		{4, 0, 0, 0},
	}, spec.Givens, "empties must come back as 0 for permutation grids")
}

func TestBuildJigsaw(t *testing.T) {
	spec, err := BuildSpec(&Task{
		Kind: puzzle.JigsawSudoku,
		Raw:  "1o;1,1,2,2,1,1,2,2,3,3,4,4,3,3,4,4",
	})
	require.NoError(t, err)
	require.NotNil(t, spec.Boxes)
	require.Equal(t, 4, spec.Boxes.Count())
	require.Equal(t, 1, spec.Givens[0][0])
}

func TestBuildKiller(t *testing.T) {
	spec, err := BuildSpec(&Task{
		Kind:    puzzle.KillerSudoku,
		Variant: "daily",
		Raw:     "1,1,2,2,3,3,4,4,5,5,6,6,7,7,8,8;3,7,3,7,7,3,7,3",
	})
	require.NoError(t, err)
	require.Equal(t, 4, spec.Height)
	require.Equal(t, 8, spec.Cages.Count())
	require.Len(t, spec.CageSums, 8)
	require.False(t, spec.KillerX)

	spec, err = BuildSpec(&Task{
		Kind:    puzzle.KillerSudoku,
		Variant: "x-daily",
		Raw:     "1,1,2,2,3,3,4,4,5,5,6,6,7,7,8,8;3,7,3,7,7,3,7,3",
	})
	require.NoError(t, err)
	require.True(t, spec.KillerX, "an x variant must add the diagonals")
}

func TestBuildFutoshiki(t *testing.T) {
	spec, err := BuildSpec(&Task{Kind: puzzle.Futoshiki, Raw: "2R,,,1,,,,,"})
	require.NoError(t, err)
	require.Equal(t, 3, spec.Height)
	require.Equal(t, 2, spec.Givens[0][0])
	require.Equal(t, []puzzle.OrderClue{{
		Greater: puzzle.Coord{Row: 0, Col: 0},
		Lesser:  puzzle.Coord{Row: 0, Col: 1},
	}}, spec.Orders, "the arrow target is the smaller cell")
	require.False(t, spec.Exhaustive)
}

func TestBuildRenzoku(t *testing.T) {
	spec, err := BuildSpec(&Task{Kind: puzzle.Renzoku, Raw: "D,,,,,,,,"})
	require.NoError(t, err)
	require.Equal(t, []puzzle.AdjacencyClue{{
		A: puzzle.Coord{Row: 0, Col: 0},
		B: puzzle.Coord{Row: 1, Col: 0},
	}}, spec.Adjacent)
	require.True(t, spec.Exhaustive, "undotted neighbors must be non-consecutive")
}

func TestBuildFutoshikiRejectsEdgeArrow(t *testing.T) {
	// an up arrow on the top row points off the grid
	_, err := BuildSpec(&Task{Kind: puzzle.Futoshiki, Raw: "U,,,,,,,,"})
	require.Error(t, err)
}

func TestBuildSkyscrapers(t *testing.T) {
	spec, err := BuildSpec(&Task{
		Kind: puzzle.Skyscrapers,
		Raw:  "1/2/2/3/-/1/2/2/-/3/2/1",
	})
	require.NoError(t, err)
	require.Equal(t, 3, spec.Height)
	require.Equal(t, []int{1, 2, 2}, spec.Top)
	require.Equal(t, []int{3, 0, 1}, spec.Bottom)
	require.Equal(t, []int{2, 2, 0}, spec.Left)
	require.Equal(t, []int{3, 2, 1}, spec.Right)
}

func TestBuildKakurasu(t *testing.T) {
	spec, err := BuildSpec(&Task{Kind: puzzle.Kakurasu, Raw: "4/10/5/15/0/1"})
	require.NoError(t, err)
	require.Equal(t, []int{4, 10, 5}, spec.Top, "column targets come first")
	require.Equal(t, []int{15, 0, 1}, spec.Left)
	require.Nil(t, spec.Givens)
}

func TestBuildKurodoko(t *testing.T) {
	spec, err := BuildSpec(&Task{Kind: puzzle.Kurodoko, Raw: "3b5_3c3"})
	require.NoError(t, err)
	require.Equal(t, [][]int{
		{3, -1, -1},
		{5, 3, -1},
		{-1, -1, 3},
	}, spec.Givens, "no clue must stay -1 for sight count grids")
}

func TestBuildSlitherLink(t *testing.T) {
	spec, err := BuildSpec(&Task{Kind: puzzle.SlitherLink, Raw: "3a0_2"})
	require.NoError(t, err)
	require.Equal(t, puzzle.SlitherLink, spec.Kind)
	require.Equal(t, [][]int{{3, -1}, {0, 2}}, spec.Givens)
}

func TestBuildSpecValidates(t *testing.T) {
	// a jigsaw task whose boxes don't tile the givens grid
	_, err := BuildSpec(&Task{Kind: puzzle.JigsawSudoku, Raw: "1c;1,1,2,2,1,1,2,2,3"})
	require.Error(t, err)
}
