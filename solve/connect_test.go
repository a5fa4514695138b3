package solve

import (
	"testing"

	"gridbot/puzzle"
)

func gridOf(values [][]int) *puzzle.Grid {
	g := puzzle.NewGrid(len(values), len(values[0]))
	for r, row := range values {
		for c, v := range row {
			g.At(r, c).Value = v
		}
	}
	return g
}

func TestConnected(t *testing.T) {
	for _, tc := range []struct {
		name   string
		values [][]int
		class  int
		want   bool
	}{
		{
			name: "single area",
			values: [][]int{
				{1, 1, 2},
				{2, 1, 2},
				{2, 1, 1},
			},
			class: 1,
			want:  true,
		},
		{
			name: "split by a wall",
			values: [][]int{
				{1, 2, 1},
				{1, 2, 1},
				{1, 2, 1},
			},
			class: 1,
			want:  false,
		},
		{
			name: "diagonal touch is not a connection",
			values: [][]int{
				{1, 2},
				{2, 1},
			},
			class: 1,
			want:  false,
		},
		{
			name: "absent class is vacuously connected",
			values: [][]int{
				{1, 1},
				{1, 1},
			},
			class: 2,
			want:  true,
		},
		{
			name: "single cell",
			values: [][]int{
				{2, 1},
				{1, 1},
			},
			class: 2,
			want:  true,
		},
	} {
		if got := Connected(gridOf(tc.values), tc.class); got != tc.want {
			t.Errorf("%s: Connected = %v, expected %v", tc.name, got, tc.want)
		}
	}
}
