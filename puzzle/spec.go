// Package puzzle provides the shared domain model for grid puzzles:
// the typed puzzle description produced by the scraper, the grid of
// cells the solver fills in, candidate value sets, and the units and
// regions that carry the puzzle's constraints.
//
// In this package, puzzle cells are either empty (represented with a
// 0 value) or have an assigned value between 1 and the size of the
// puzzle's symbol alphabet (inclusive).  Cells are addressed by
// (row, column) pairs that start at (0, 0) in the top-left corner
// and increase left-to-right, top-to-bottom (English reading order).
//
// The solver for these puzzles lives in the solve package; this
// package only knows how to describe puzzles and validate that a
// description is internally consistent.
package puzzle

/*

Puzzle families

*/

// A Kind tags the puzzle family a Spec belongs to.  The solver uses
// the tag to pick the constraint plugin; the scraper derives it from
// the puzzle page's URL.
type Kind string

// The known puzzle families.
const (
	Sudoku       Kind = "sudoku"
	JigsawSudoku Kind = "jigsaw-sudoku"
	KillerSudoku Kind = "killer-sudoku"
	Futoshiki    Kind = "futoshiki"
	Renzoku      Kind = "renzoku"
	Skyscrapers  Kind = "skyscrapers"
	Kurodoko     Kind = "kurodoko"
	SlitherLink  Kind = "slitherlink"
	Kakurasu     Kind = "kakurasu"
)

// knownKinds lists every family this module can solve, in the order
// they should be shown to users.
var knownKinds = []Kind{
	Sudoku, JigsawSudoku, KillerSudoku,
	Futoshiki, Renzoku, Skyscrapers,
	Kurodoko, SlitherLink, Kakurasu,
}

// KnownKinds returns the puzzle families this module can solve.  The
// returned slice doesn't share storage with the package.
func KnownKinds() []Kind {
	return append([]Kind(nil), knownKinds...)
}

// IsKnownKind reports whether the solver has a plugin for the family.
func IsKnownKind(k Kind) bool {
	for _, known := range knownKinds {
		if known == k {
			return true
		}
	}
	return false
}

/*

Puzzle specifications

*/

// NoClue marks a cell without a number clue in the Givens grid of
// families whose clues sit inside the grid (kurodoko, slitherlink).
const NoClue = -1

// A Coord addresses one cell of a grid.
type Coord struct {
	Row, Col int
}

// An OrderClue requires the value at Greater to be strictly larger
// than the value at Lesser.  The two cells are always orthogonal
// neighbors (futoshiki inequality signs sit between adjacent cells).
type OrderClue struct {
	Greater, Lesser Coord
}

// An AdjacencyClue marks a pair of orthogonal neighbors as
// consecutive (|a-b| == 1).  In renzoku puzzles the absence of a dot
// between two neighbors also means something: they must NOT be
// consecutive, which the Exhaustive flag on the Spec turns on.
type AdjacencyClue struct {
	A, B Coord
}

// A Spec is the fully decoded description of one puzzle instance,
// produced by the scrape package (or built by hand in tests) and
// consumed exactly once to set up a solve.  All values are already
// integer-decoded; no string parsing happens downstream of a Spec.
//
// Which fields are meaningful depends on the Kind; Validate knows
// the requirements of each family.
type Spec struct {
	Kind   Kind
	Height int
	Width  int

	// Givens is the clue grid.  For permutation puzzles it holds
	// pre-assigned values (0 = empty).  For kurodoko and slitherlink
	// it holds the number clues (-1 = no clue).  Unused for border
	// clue puzzles.
	Givens [][]int

	// Boxes is the secondary uniqueness region map for sudoku-style
	// puzzles: regular rectangular boxes or an irregular (jigsaw)
	// layout.  Nil when the family has no boxes.
	Boxes *RegionMap

	// Cages and CageSums describe killer sudoku cages: CageSums[i]
	// is the required sum of region i of Cages.
	Cages    *RegionMap
	CageSums []int

	// KillerX adds the two main diagonals as uniqueness units.
	KillerX bool

	// Orders are futoshiki inequality clues.
	Orders []OrderClue

	// Adjacent are renzoku consecutiveness clues; Exhaustive means
	// an unlisted neighbor pair must be non-consecutive.
	Adjacent   []AdjacencyClue
	Exhaustive bool

	// Border clues, one entry per column (Top, Bottom) or per row
	// (Left, Right); 0 = no clue.  Skyscrapers uses all four sides
	// as visibility counts, kakurasu uses Left and Top as weighted
	// sums.
	Top, Bottom, Left, Right []int
}

// Cells returns the number of cells in the puzzle grid.
func (s *Spec) Cells() int {
	return s.Height * s.Width
}

// In reports whether a coordinate is inside the spec's grid.
func (s *Spec) In(rc Coord) bool {
	return rc.Row >= 0 && rc.Row < s.Height && rc.Col >= 0 && rc.Col < s.Width
}

// Validate checks a Spec for the structural problems that must abort
// a run before any search is attempted: unknown family, impossible
// dimensions, clue arrays that don't match the dimensions, region
// maps that reference out-of-range cells.  It returns nil or an
// Error value describing the first problem found.
func (s *Spec) Validate() error {
	if !IsKnownKind(s.Kind) {
		return specError(KindAttribute, string(s.Kind), UnknownKindCondition)
	}
	if s.Height < 1 || s.Width < 1 {
		return specError(SizeAttribute, s.Height*s.Width, TooSmallCondition)
	}
	if s.Givens != nil {
		if len(s.Givens) != s.Height {
			return countError(GivensAttribute, len(s.Givens), s.Height)
		}
		for _, row := range s.Givens {
			if len(row) != s.Width {
				return countError(GivensAttribute, len(row), s.Width)
			}
		}
	}
	if s.Boxes != nil {
		if err := s.Boxes.check(s.Height, s.Width); err != nil {
			return err
		}
	}
	if s.Cages != nil {
		if err := s.Cages.check(s.Height, s.Width); err != nil {
			return err
		}
		if len(s.CageSums) != s.Cages.Count() {
			return countError(CageSumsAttribute, len(s.CageSums), s.Cages.Count())
		}
	}
	for _, o := range s.Orders {
		if !s.In(o.Greater) || !s.In(o.Lesser) {
			return specError(OrderAttribute, o, OutOfRangeCondition)
		}
	}
	for _, a := range s.Adjacent {
		if !s.In(a.A) || !s.In(a.B) {
			return specError(OrderAttribute, a, OutOfRangeCondition)
		}
	}
	for _, clues := range [][]int{s.Top, s.Bottom} {
		if clues != nil && len(clues) != s.Width {
			return countError(BorderAttribute, len(clues), s.Width)
		}
	}
	for _, clues := range [][]int{s.Left, s.Right} {
		if clues != nil && len(clues) != s.Height {
			return countError(BorderAttribute, len(clues), s.Height)
		}
	}
	return nil
}
