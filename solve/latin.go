package solve

import (
	"gridbot/puzzle"
)

/*

Permutation family

Every row and column holds each symbol exactly once.  The six kinds
in the family (plain, jigsaw and killer sudoku, futoshiki, renzoku,
skyscrapers) differ only in the extra constraints layered on top, so
the plugin is one core plus a list of cell rules composed per kind.

*/

// A CellRule is one composable extra constraint of the permutation
// family: cage sums, inequality signs, consecutiveness dots, border
// visibility.  A plugin instance carries zero or more of them and
// consults every one at every decision point.
type CellRule interface {
	// Allows is the per-guess legality check, called with v not yet
	// assigned to rc.
	Allows(st *State, rc puzzle.Coord, v int) bool

	// Narrow filters a cell's initial candidate set during cache
	// rebuild.
	Narrow(st *State, rc puzzle.Coord, s puzzle.ValueSet) puzzle.ValueSet

	// Propagate runs the rule's own eliminations in the fixpoint
	// loop and returns the elimination count.
	Propagate(st *State) int

	// Leaf checks the rule on a complete assignment.
	Leaf(st *State) bool

	// Weight is the rule's contribution to the MRV tiebreak for a
	// cell; cells touched by more clues are guessed earlier.
	Weight(rc puzzle.Coord) int
}

// baseRule is the do-nothing rule concrete rules embed, so each only
// spells out the methods it cares about.
type baseRule struct{}

func (baseRule) Allows(*State, puzzle.Coord, int) bool { return true }
func (baseRule) Narrow(_ *State, _ puzzle.Coord, s puzzle.ValueSet) puzzle.ValueSet {
	return s
}
func (baseRule) Propagate(*State) int    { return 0 }
func (baseRule) Leaf(*State) bool        { return true }
func (baseRule) Weight(puzzle.Coord) int { return 0 }

// latinRules is the family plugin: row/column/box uniqueness in the
// core, everything else in the extras.
type latinRules struct {
	boxes  *puzzle.RegionMap // nil for the box-free kinds
	extras []CellRule
}

func init() {
	for _, kind := range []puzzle.Kind{
		puzzle.Sudoku, puzzle.JigsawSudoku, puzzle.KillerSudoku,
		puzzle.Futoshiki, puzzle.Renzoku, puzzle.Skyscrapers,
	} {
		RegisterFamily(&Family{Kind: kind, New: newLatinSetup})
	}
}

// boxDims picks the standard box shape for an n x n sudoku: the
// squarest boxH x boxW rectangle with boxH * boxW == n (3x3 for 9,
// 2x3 for 6, 4x4 for 16).
func boxDims(n int) (int, int) {
	for h := n; h >= 1; h-- {
		if h*h <= n && n%h == 0 {
			return h, n / h
		}
	}
	return 1, n
}

func newLatinSetup(spec *puzzle.Spec) (*Setup, error) {
	if spec.Height != spec.Width {
		return nil, puzzle.Error{
			Scope:     puzzle.SpecScope,
			Condition: puzzle.GeneralCondition,
			Attribute: puzzle.SizeAttribute,
			Values:    puzzle.ErrorData{spec.Height, "the grid must be square"},
		}
	}
	n := spec.Width
	if n > puzzle.MaxValue {
		return nil, puzzle.Error{
			Scope:     puzzle.SpecScope,
			Condition: puzzle.TooLargeCondition,
			Attribute: puzzle.SizeAttribute,
			Values:    puzzle.ErrorData{n},
		}
	}

	var grid *puzzle.Grid
	if spec.Givens != nil {
		for r, row := range spec.Givens {
			for c, v := range row {
				if v < 0 || v > n {
					return nil, puzzle.Error{
						Scope:     puzzle.CellScope,
						Condition: puzzle.OutOfRangeCondition,
						Attribute: puzzle.ValueAttribute,
						Values:    puzzle.ErrorData{puzzle.Coord{Row: r, Col: c}, v},
					}
				}
			}
		}
		grid = puzzle.NewGridValues(spec.Givens)
	} else {
		grid = puzzle.NewGrid(n, n)
	}

	units := append(puzzle.RowUnits(n, n), puzzle.ColUnits(n, n)...)
	rules := &latinRules{}

	switch spec.Kind {
	case puzzle.Sudoku, puzzle.KillerSudoku:
		rules.boxes = spec.Boxes
		if rules.boxes == nil {
			boxH, boxW := boxDims(n)
			var err error
			rules.boxes, err = puzzle.RegularBoxes(n, n, boxH, boxW)
			if err != nil {
				return nil, err
			}
		}
	case puzzle.JigsawSudoku:
		if spec.Boxes == nil {
			return nil, puzzle.Error{
				Scope:     puzzle.SpecScope,
				Condition: puzzle.GeneralCondition,
				Attribute: puzzle.RegionAttribute,
				Values:    puzzle.ErrorData{spec.Kind, "an irregular box layout is required"},
			}
		}
		rules.boxes = spec.Boxes
	}
	if rules.boxes != nil {
		units = append(units, rules.boxes.Units(puzzle.GtypeBox)...)
	}

	if spec.Kind == puzzle.KillerSudoku {
		if spec.Cages == nil {
			return nil, puzzle.Error{
				Scope:     puzzle.SpecScope,
				Condition: puzzle.GeneralCondition,
				Attribute: puzzle.RegionAttribute,
				Values:    puzzle.ErrorData{spec.Kind, "a cage layout with sums is required"},
			}
		}
		cages := spec.Cages.Units(puzzle.GtypeCage)
		for i := range cages {
			cages[i].Kind = puzzle.SumUnit
			cages[i].Target = spec.CageSums[i]
		}
		units = append(units, cages...)
		rules.extras = append(rules.extras, newCageRule(n, spec.Cages, spec.CageSums))
	}
	if spec.KillerX {
		units = append(units, puzzle.DiagonalUnits(n)...)
		rules.extras = append(rules.extras, &diagonalRule{n: n})
	}
	if len(spec.Orders) > 0 {
		rules.extras = append(rules.extras, newOrderRule(spec.Orders))
	}
	if len(spec.Adjacent) > 0 || spec.Exhaustive {
		rules.extras = append(rules.extras, newAdjacencyRule(spec, n))
	}
	if spec.Kind == puzzle.Skyscrapers {
		rules.extras = append(rules.extras, newVisibilityRule(spec, n))
	}

	return &Setup{
		Grid:     grid,
		Units:    units,
		Boxes:    rules.boxes,
		Alphabet: n,
		Plugin:   rules,
	}, nil
}

func (lr *latinRules) Candidates(st *State, rc puzzle.Coord) puzzle.ValueSet {
	s := puzzle.NewValueSetRange(st.Alphabet())
	for c := 0; c < st.Grid.Width; c++ {
		s.Remove(st.Grid.Value(rc.Row, c))
	}
	for r := 0; r < st.Grid.Height; r++ {
		s.Remove(st.Grid.Value(r, rc.Col))
	}
	if lr.boxes != nil {
		for _, bc := range lr.boxes.Cells(lr.boxes.ID(rc.Row, rc.Col)) {
			s.Remove(st.Grid.Value(bc.Row, bc.Col))
		}
	}
	for _, rule := range lr.extras {
		s = rule.Narrow(st, rc, s)
	}
	return s
}

func (lr *latinRules) Valid(st *State, rc puzzle.Coord, v int) bool {
	for c := 0; c < st.Grid.Width; c++ {
		if c != rc.Col && st.Grid.Value(rc.Row, c) == v {
			return false
		}
	}
	for r := 0; r < st.Grid.Height; r++ {
		if r != rc.Row && st.Grid.Value(r, rc.Col) == v {
			return false
		}
	}
	if lr.boxes != nil {
		for _, bc := range lr.boxes.Cells(lr.boxes.ID(rc.Row, rc.Col)) {
			if bc != rc && st.Grid.Value(bc.Row, bc.Col) == v {
				return false
			}
		}
	}
	for _, rule := range lr.extras {
		if !rule.Allows(st, rc, v) {
			return false
		}
	}
	return true
}

func (lr *latinRules) Propagate(st *State) int {
	removed := 0
	for _, rule := range lr.extras {
		removed += rule.Propagate(st)
	}
	return removed
}

func (lr *latinRules) LeafValid(st *State) bool {
	for _, rule := range lr.extras {
		if !rule.Leaf(st) {
			return false
		}
	}
	return true
}

func (lr *latinRules) Weight(rc puzzle.Coord) int {
	w := 0
	for _, rule := range lr.extras {
		w += rule.Weight(rc)
	}
	return w
}

/*

Cage sums

*/

// cageRule enforces killer cages: distinct values per cage, exact
// sum per cage, plus the min/max feasibility cut that prunes a guess
// when the cage's remaining cells cannot reach the remaining sum
// with distinct unused values.
type cageRule struct {
	baseRule
	alphabet int
	cages    *puzzle.RegionMap
	sums     []int
}

func newCageRule(alphabet int, cages *puzzle.RegionMap, sums []int) *cageRule {
	return &cageRule{alphabet: alphabet, cages: cages, sums: sums}
}

func (cr *cageRule) Allows(st *State, rc puzzle.Coord, v int) bool {
	id := cr.cages.ID(rc.Row, rc.Col)
	cells := cr.cages.Cells(id)
	used := puzzle.NewValueSet(v)
	sum, filled := v, 1
	for _, cc := range cells {
		if cc == rc {
			continue
		}
		if cv := st.Grid.Value(cc.Row, cc.Col); cv > 0 {
			if used.Has(cv) {
				return false
			}
			used.Add(cv)
			sum += cv
			filled++
		}
	}
	if used.Len() < filled {
		// v collided with an already assigned cage value
		return false
	}
	target := cr.sums[id]
	remaining := len(cells) - filled
	if remaining == 0 {
		return sum == target
	}
	need := target - sum
	avail := puzzle.NewValueSetRange(cr.alphabet).Subtract(used).Values()
	if len(avail) < remaining {
		return false
	}
	min, max := 0, 0
	for i := 0; i < remaining; i++ {
		min += avail[i]
		max += avail[len(avail)-1-i]
	}
	return min <= need && need <= max
}

func (cr *cageRule) Narrow(st *State, rc puzzle.Coord, s puzzle.ValueSet) puzzle.ValueSet {
	out := s
	for _, v := range s.Values() {
		if !cr.Allows(st, rc, v) {
			out.Remove(v)
		}
	}
	return out
}

func (cr *cageRule) Leaf(st *State) bool {
	for id := 0; id < cr.cages.Count(); id++ {
		sum := 0
		for _, rc := range cr.cages.Cells(id) {
			sum += st.Grid.Value(rc.Row, rc.Col)
		}
		if sum != cr.sums[id] {
			return false
		}
	}
	return true
}

/*

X diagonals

*/

// diagonalRule makes the two main diagonals permutation sets, the X
// variant of killer sudoku.  Unlike boxes the diagonals only cover
// some cells, so membership is checked per coordinate.
type diagonalRule struct {
	baseRule
	n int
}

func (dr *diagonalRule) Allows(st *State, rc puzzle.Coord, v int) bool {
	if rc.Col == rc.Row {
		for i := 0; i < dr.n; i++ {
			if i != rc.Row && st.Grid.Value(i, i) == v {
				return false
			}
		}
	}
	if rc.Col == dr.n-1-rc.Row {
		for i := 0; i < dr.n; i++ {
			if i != rc.Row && st.Grid.Value(i, dr.n-1-i) == v {
				return false
			}
		}
	}
	return true
}

func (dr *diagonalRule) Narrow(st *State, rc puzzle.Coord, s puzzle.ValueSet) puzzle.ValueSet {
	if rc.Col == rc.Row {
		for i := 0; i < dr.n; i++ {
			s.Remove(st.Grid.Value(i, i))
		}
	}
	if rc.Col == dr.n-1-rc.Row {
		for i := 0; i < dr.n; i++ {
			s.Remove(st.Grid.Value(i, dr.n-1-i))
		}
	}
	return s
}

func (dr *diagonalRule) Weight(rc puzzle.Coord) int {
	w := 0
	if rc.Col == rc.Row {
		w++
	}
	if rc.Col == dr.n-1-rc.Row {
		w++
	}
	return w
}

/*

Inequality signs

*/

// orderRule enforces futoshiki inequality clues.  above[rc] lists
// the neighbors that must hold larger values than rc, below[rc] the
// ones that must hold smaller ones.
type orderRule struct {
	baseRule
	clues []puzzle.OrderClue
	above map[puzzle.Coord][]puzzle.Coord
	below map[puzzle.Coord][]puzzle.Coord
}

func newOrderRule(clues []puzzle.OrderClue) *orderRule {
	or := &orderRule{
		clues: clues,
		above: make(map[puzzle.Coord][]puzzle.Coord),
		below: make(map[puzzle.Coord][]puzzle.Coord),
	}
	for _, o := range clues {
		or.above[o.Lesser] = append(or.above[o.Lesser], o.Greater)
		or.below[o.Greater] = append(or.below[o.Greater], o.Lesser)
	}
	return or
}

func (or *orderRule) Allows(st *State, rc puzzle.Coord, v int) bool {
	for _, n := range or.above[rc] {
		if nv := st.Grid.Value(n.Row, n.Col); nv > 0 && v >= nv {
			return false
		}
	}
	for _, n := range or.below[rc] {
		if nv := st.Grid.Value(n.Row, n.Col); nv > 0 && v <= nv {
			return false
		}
	}
	return true
}

// Propagate tightens candidate bounds along the inequality arcs: a
// cell stays below the largest value its greater neighbor can still
// take, and above the smallest its lesser neighbor can.  Rounds of
// the fixpoint loop ripple the bounds down inequality chains.
func (or *orderRule) Propagate(st *State) int {
	removed := 0
	for rc, ns := range or.above {
		if !st.Tracked(rc) {
			continue
		}
		for _, n := range ns {
			upper := st.Candidates(n).Max() - 1
			removed += st.SetCandidates(rc, st.Candidates(rc).Intersect(puzzle.NewValueSetRange(upper)))
		}
	}
	for rc, ns := range or.below {
		if !st.Tracked(rc) {
			continue
		}
		for _, n := range ns {
			floor := puzzle.NewValueSetRange(st.Candidates(n).Min())
			removed += st.SetCandidates(rc, st.Candidates(rc).Subtract(floor))
		}
	}
	return removed
}

func (or *orderRule) Leaf(st *State) bool {
	for _, o := range or.clues {
		g := st.Grid.Value(o.Greater.Row, o.Greater.Col)
		l := st.Grid.Value(o.Lesser.Row, o.Lesser.Col)
		if g <= l {
			return false
		}
	}
	return true
}

func (or *orderRule) Weight(rc puzzle.Coord) int {
	return len(or.above[rc]) + len(or.below[rc])
}

/*

Consecutiveness dots

*/

// adjacencyRule enforces renzoku dots: dotted neighbor pairs must be
// consecutive, and in exhaustive mode every undotted neighbor pair
// must differ by at least two.
type adjacencyRule struct {
	baseRule
	cons    map[puzzle.Coord][]puzzle.Coord
	noncons map[puzzle.Coord][]puzzle.Coord
}

func newAdjacencyRule(spec *puzzle.Spec, n int) *adjacencyRule {
	ar := &adjacencyRule{
		cons:    make(map[puzzle.Coord][]puzzle.Coord),
		noncons: make(map[puzzle.Coord][]puzzle.Coord),
	}
	dotted := make(map[[2]puzzle.Coord]bool)
	for _, a := range spec.Adjacent {
		ar.cons[a.A] = append(ar.cons[a.A], a.B)
		ar.cons[a.B] = append(ar.cons[a.B], a.A)
		dotted[[2]puzzle.Coord{a.A, a.B}] = true
		dotted[[2]puzzle.Coord{a.B, a.A}] = true
	}
	if spec.Exhaustive {
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				rc := puzzle.Coord{Row: r, Col: c}
				for _, d := range [2][2]int{{0, 1}, {1, 0}} {
					nb := puzzle.Coord{Row: r + d[0], Col: c + d[1]}
					if !spec.In(nb) || dotted[[2]puzzle.Coord{rc, nb}] {
						continue
					}
					ar.noncons[rc] = append(ar.noncons[rc], nb)
					ar.noncons[nb] = append(ar.noncons[nb], rc)
				}
			}
		}
	}
	return ar
}

func (ar *adjacencyRule) Allows(st *State, rc puzzle.Coord, v int) bool {
	for _, n := range ar.cons[rc] {
		if nv := st.Grid.Value(n.Row, n.Col); nv > 0 && nv != v-1 && nv != v+1 {
			return false
		}
	}
	for _, n := range ar.noncons[rc] {
		if nv := st.Grid.Value(n.Row, n.Col); nv > 0 && (nv == v-1 || nv == v+1) {
			return false
		}
	}
	return true
}

// Propagate works on candidate sets directly.  A dotted neighbor
// with set S leaves only the values one step from some member of S,
// which is the shifted mask (S<<1)|(S>>1).  An undotted neighbor is
// restrictive only when its whole set fits a three-value window.
func (ar *adjacencyRule) Propagate(st *State) int {
	removed := 0
	for rc, ns := range ar.cons {
		if !st.Tracked(rc) {
			continue
		}
		for _, n := range ns {
			s := st.Candidates(n)
			steps := puzzle.ValueSet(uint64(s)<<1 | uint64(s)>>1)
			removed += st.SetCandidates(rc, st.Candidates(rc).Intersect(steps))
		}
	}
	for rc, ns := range ar.noncons {
		if !st.Tracked(rc) {
			continue
		}
		for _, n := range ns {
			s := st.Candidates(n)
			if s.Max()-s.Min() > 2 {
				continue
			}
			forbidden := puzzle.NewValueSetRange(s.Min() + 1).Subtract(puzzle.NewValueSetRange(s.Max() - 2))
			removed += st.SetCandidates(rc, st.Candidates(rc).Subtract(forbidden))
		}
	}
	return removed
}

func (ar *adjacencyRule) Leaf(st *State) bool {
	value := func(rc puzzle.Coord) int { return st.Grid.Value(rc.Row, rc.Col) }
	for rc, ns := range ar.cons {
		for _, n := range ns {
			if diff := value(rc) - value(n); diff != 1 && diff != -1 {
				return false
			}
		}
	}
	for rc, ns := range ar.noncons {
		for _, n := range ns {
			if diff := value(rc) - value(n); diff == 1 || diff == -1 {
				return false
			}
		}
	}
	return true
}

func (ar *adjacencyRule) Weight(rc puzzle.Coord) int {
	return len(ar.cons[rc])
}
