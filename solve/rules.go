// Package solve implements the constraint-solving engine shared by
// every puzzle family: typed candidate domains per cell, propagation
// to a fixpoint before every guess, and iterative backtracking
// search with minimum-remaining-values ordering.
//
// A puzzle family plugs into the engine through the Plugin
// interface, which injects the family's legality rules, initial
// candidate domains, extra propagation, and leaf invariants.  The
// engine owns everything else: the generic elimination techniques
// (hidden singles, naked subsets, pointing), the search driver, the
// dead-state memo, and progress reporting.
package solve

import (
	"fmt"

	"gridbot/puzzle"
)

/*

Constraint plugins

*/

// A Plugin injects one puzzle family's rules into the search driver.
// Plugins are stateless with respect to any given grid snapshot:
// their only side effects go through the State that owns them.
type Plugin interface {
	// Candidates returns the initial, un-propagated domain of an
	// unassigned cell under the current grid state.
	Candidates(st *State, rc puzzle.Coord) puzzle.ValueSet

	// Valid is the hard legality check: may value v go into cell rc
	// given every active constraint?  The engine calls it with the
	// value not yet assigned.
	Valid(st *State, rc puzzle.Coord, v int) bool

	// Propagate applies domain-specific deductions after each
	// generic elimination pass and returns the elimination count.
	// It must never assign a value directly; collapsing a candidate
	// set to a singleton is as far as it goes.
	Propagate(st *State) int

	// LeafValid is checked once at a complete assignment, for the
	// invariants that only make sense globally (connectivity,
	// single-loop shape, exact visibility counts).
	LeafValid(st *State) bool
}

// Incremental is implemented by plugins that maintain structures
// updated on every assignment (edge degrees, union-find components,
// running cage sums).  Apply may reject the assignment outright by
// returning false, in which case the engine does not assign and does
// not call Retract.
type Incremental interface {
	Apply(st *State, rc puzzle.Coord, v int) bool
	Retract(st *State, rc puzzle.Coord, v int)
}

// Weighted is implemented by plugins with a secondary MRV ordering
// key: when two cells tie on candidate count, the one with the
// larger weight (more external constraints touching it) is tried
// first.
type Weighted interface {
	Weight(rc puzzle.Coord) int
}

// WallMapper is implemented by loop-drawing plugins whose natural
// output is an edge map rather than a value grid.
type WallMapper interface {
	Walls(st *State) *puzzle.WallMap
}

/*

Family registry

*/

// A Setup is everything a family hands the engine for one solve: the
// working grid with givens applied, the static units and box regions
// the generic techniques operate on, the symbol alphabet, the cells
// the search must decide, and the plugin itself.
type Setup struct {
	Grid     *puzzle.Grid
	Units    []puzzle.Unit
	Boxes    *puzzle.RegionMap
	Alphabet int
	Open     []puzzle.Coord
	Plugin   Plugin
}

// A Family describes a registered puzzle family: the Kind tag it
// answers to and a constructor that turns a validated Spec into a
// Setup.
type Family struct {
	Kind puzzle.Kind
	New  func(spec *puzzle.Spec) (*Setup, error)
}

// The registry of known families.  A linear list is fine: there are
// fewer than a dozen families and registration happens once at init.
var knownFamilies []*Family

// LookupFamily finds the registered family for a Kind.  The boolean
// return tells you whether the lookup succeeded, like a map lookup.
func LookupFamily(kind puzzle.Kind) (*Family, bool) {
	for _, f := range knownFamilies {
		if f.Kind == kind {
			return f, true
		}
	}
	return nil, false
}

// RegisterFamily is how plugin files tell the engine about their
// family.  Registering the same Kind twice is a programming error.
func RegisterFamily(f *Family) {
	if f == nil || f.Kind == "" || f.New == nil {
		panic(fmt.Errorf("attempt to register an incomplete family: %+v", f))
	}
	if _, ok := LookupFamily(f.Kind); ok {
		panic(fmt.Errorf("family %q is already registered", f.Kind))
	}
	knownFamilies = append(knownFamilies, f)
}

// openCells returns the unassigned cells of a grid in reading order,
// the default search order when a family doesn't supply its own.
func openCells(g *puzzle.Grid) []puzzle.Coord {
	var open []puzzle.Coord
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if g.Value(r, c) == 0 {
				open = append(open, puzzle.Coord{Row: r, Col: c})
			}
		}
	}
	return open
}
