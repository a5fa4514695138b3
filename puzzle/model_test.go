package puzzle

import (
	"reflect"
	"testing"
)

/*

grid tests

*/

func TestNewGridValues(t *testing.T) {
	g := NewGridValues([][]int{
		{1, 0, 3},
		{0, 2, 0},
	})
	if g.Height != 2 || g.Width != 3 {
		t.Fatalf("grid came out %dx%d, expected 2x3", g.Height, g.Width)
	}
	for _, tc := range []struct {
		name  string
		r, c  int
		value int
		given bool
	}{
		{"given corner", 0, 0, 1, true},
		{"empty cell", 0, 1, 0, false},
		{"given end of row", 0, 2, 3, true},
		{"given mid row", 1, 1, 2, true},
		{"empty end of row", 1, 2, 0, false},
	} {
		cell := g.At(tc.r, tc.c)
		if cell.Value != tc.value || cell.Given != tc.given {
			t.Errorf("%s: got value %d given %v, expected value %d given %v",
				tc.name, cell.Value, cell.Given, tc.value, tc.given)
		}
		if cell.Row != tc.r || cell.Col != tc.c {
			t.Errorf("%s: cell thinks it is at (%d, %d)", tc.name, cell.Row, cell.Col)
		}
	}
	if n := g.Unassigned(); n != 3 {
		t.Errorf("Unassigned returned %d, expected 3", n)
	}
}

func TestGridIn(t *testing.T) {
	g := NewGrid(2, 3)
	for _, tc := range []struct {
		name string
		r, c int
		want bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 1, 2, true},
		{"row below", 2, 0, false},
		{"column beyond", 0, 3, false},
		{"negative row", -1, 0, false},
		{"negative column", 0, -1, false},
	} {
		if got := g.In(tc.r, tc.c); got != tc.want {
			t.Errorf("%s: In(%d, %d) = %v, expected %v", tc.name, tc.r, tc.c, got, tc.want)
		}
	}
}

func TestGridValuesAndFlat(t *testing.T) {
	in := [][]int{{1, 2}, {0, 4}}
	g := NewGridValues(in)
	if got := g.Values(); !reflect.DeepEqual(got, in) {
		t.Errorf("Values returned %v, expected %v", got, in)
	}
	if got := g.Flat(); !reflect.DeepEqual(got, []int{1, 2, 0, 4}) {
		t.Errorf("Flat returned %v", got)
	}
	// the matrices must not share storage with the grid
	g.Values()[0][0] = 9
	g.Flat()[1] = 9
	if g.Value(0, 0) != 1 || g.Value(0, 1) != 2 {
		t.Error("mutating a returned matrix changed the grid")
	}
}

func TestGridCopy(t *testing.T) {
	g := NewGridValues([][]int{{1, 0}, {0, 2}})
	c := g.Copy()
	c.At(0, 1).Value = 3
	if g.Value(0, 1) != 0 {
		t.Error("writing the copy changed the original")
	}
	if c.Value(0, 0) != 1 || !c.At(0, 0).Given {
		t.Error("the copy lost cell state")
	}
	var nilGrid *Grid
	if nilGrid.Copy() != nil {
		t.Error("copying a nil grid should stay nil")
	}
}

/*

value set tests

*/

func TestNewValueSetRange(t *testing.T) {
	for _, tc := range []struct {
		name string
		max  int
		want []int
	}{
		{"empty below one", 0, []int{}},
		{"single", 1, []int{1}},
		{"four", 4, []int{1, 2, 3, 4}},
		{"negative", -2, []int{}},
	} {
		if got := NewValueSetRange(tc.max).Values(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: Range(%d) = %v, expected %v", tc.name, tc.max, got, tc.want)
		}
	}
	// an oversized max clamps instead of shifting out of the word
	if got := NewValueSetRange(MaxValue + 10); got.Len() != MaxValue || !got.Has(MaxValue) {
		t.Errorf("oversized range came out with %d values, max %d", got.Len(), got.Max())
	}
}

func TestValueSetMembership(t *testing.T) {
	s := NewValueSet(2, 5, 9)
	for _, tc := range []struct {
		name string
		v    int
		want bool
	}{
		{"member", 5, true},
		{"non-member", 3, false},
		{"zero never belongs", 0, false},
		{"past the cap", MaxValue + 1, false},
	} {
		if got := s.Has(tc.v); got != tc.want {
			t.Errorf("%s: Has(%d) = %v, expected %v", tc.name, tc.v, got, tc.want)
		}
	}
	if s.Len() != 3 || s.Empty() {
		t.Errorf("set of three came out Len %d Empty %v", s.Len(), s.Empty())
	}
	if ValueSet(0).Len() != 0 || !ValueSet(0).Empty() {
		t.Error("the zero set is not empty")
	}
}

func TestValueSetAddRemove(t *testing.T) {
	var s ValueSet
	s.Add(3)
	s.Add(3)
	s.Add(0)            // out of range, ignored
	s.Add(MaxValue + 1) // out of range, ignored
	if got := s.Values(); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("after adds the set is %v, expected [3]", got)
	}
	if !s.Remove(3) {
		t.Error("removing a member reported false")
	}
	if s.Remove(3) {
		t.Error("removing an absent value reported true")
	}
	if !s.Empty() {
		t.Errorf("set should be empty, has %v", s.Values())
	}
}

func TestValueSetSingle(t *testing.T) {
	for _, tc := range []struct {
		name  string
		set   ValueSet
		value int
		isOne bool
	}{
		{"singleton", NewValueSet(7), 7, true},
		{"pair", NewValueSet(1, 2), 0, false},
		{"empty", 0, 0, false},
	} {
		v, one := tc.set.Single()
		if v != tc.value || one != tc.isOne {
			t.Errorf("%s: Single() = (%d, %v), expected (%d, %v)",
				tc.name, v, one, tc.value, tc.isOne)
		}
	}
}

func TestValueSetMinMax(t *testing.T) {
	s := NewValueSet(3, 8, 5)
	if s.Min() != 3 || s.Max() != 8 {
		t.Errorf("Min/Max = %d/%d, expected 3/8", s.Min(), s.Max())
	}
	var empty ValueSet
	if empty.Min() != 0 || empty.Max() != 0 {
		t.Error("the empty set's bounds should both be 0")
	}
}

func TestValueSetOperations(t *testing.T) {
	a := NewValueSet(1, 2, 3)
	b := NewValueSet(3, 4)
	for _, tc := range []struct {
		name string
		got  ValueSet
		want []int
	}{
		{"union", a.Union(b), []int{1, 2, 3, 4}},
		{"intersect", a.Intersect(b), []int{3}},
		{"subtract", a.Subtract(b), []int{1, 2}},
		{"subtract all", a.Subtract(a), []int{}},
	} {
		if got := tc.got.Values(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, expected %v", tc.name, got, tc.want)
		}
	}
}
