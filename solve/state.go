package solve

import (
	"log/slog"
	"time"

	"gridbot/puzzle"
)

/*

Search state

A State is one solve in flight: the working grid, the candidate cache
for the open cells, the search order, and the counters.  States are
single-use and not safe for concurrent access; run concurrent solves
on separate States.

*/

// A Result classifies the outcome of a solve.
type Result int

// The three solve outcomes.  A malformed puzzle description never
// gets this far; New rejects it with a puzzle.Error instead.
const (
	Unsatisfiable Result = iota
	Solved
	Cancelled
)

// Results implement Stringer for logs and test failures.
func (r Result) String() string {
	switch r {
	case Solved:
		return "solved"
	case Unsatisfiable:
		return "unsatisfiable"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Options are the engine tunables.  The zero value means "use the
// defaults"; Normalize fills the blanks.
type Options struct {
	// NakedSubsetMax bounds the k of the naked k-subset technique.
	// Larger k finds more eliminations per pass at combinatorial
	// cost.  Default 6.
	NakedSubsetMax int

	// ResortBatch is how many search nodes share one full MRV sort
	// of the open cells.  Between full sorts the driver does a
	// cheaper min-scan.  Default 1 (sort at every node).
	ResortBatch int

	// MemoSize is the capacity of the dead-state cache, in board
	// snapshots.  Zero means the default (4096); negative disables
	// the memo.
	MemoSize int

	// StatsInterval and PartialInterval gate the progress stream:
	// counter snapshots at most every StatsInterval, snapshots that
	// carry the partial grid at most every PartialInterval.
	// Defaults 10s and 100s.
	StatsInterval   time.Duration
	PartialInterval time.Duration

	// OnProgress, when set, receives snapshots from the reporter
	// goroutine.  Leave nil to log progress through Logger instead.
	OnProgress func(Snapshot)

	// Logger for progress and summary lines.  Nil disables them.
	Logger *slog.Logger
}

const (
	defaultNakedSubsetMax = 6
	defaultMemoSize       = 4096
	defaultStatsInterval  = 10 * time.Second
	defaultPartialGap     = 100 * time.Second
)

// Normalize fills defaulted option fields in place.
func (o *Options) Normalize() {
	if o.NakedSubsetMax <= 0 {
		o.NakedSubsetMax = defaultNakedSubsetMax
	}
	if o.ResortBatch <= 0 {
		o.ResortBatch = 1
	}
	if o.MemoSize == 0 {
		o.MemoSize = defaultMemoSize
	}
	if o.StatsInterval <= 0 {
		o.StatsInterval = defaultStatsInterval
	}
	if o.PartialInterval <= 0 {
		o.PartialInterval = defaultPartialGap
	}
}

// Stats are the counters a solve accumulates.  They are written only
// by the solving goroutine; other goroutines see them through
// Snapshot copies.
type Stats struct {
	Nodes        int64 // search nodes entered
	Guesses      int64 // values tried
	Backtracks   int64 // nodes abandoned
	Eliminations int64 // candidates removed by propagation
	MemoHits     int64 // dead states recognized
	Elapsed      time.Duration
}

// A Solution is what Solve returns.  Grid is set on success for the
// value-grid families; Walls is set instead for the loop families.
type Solution struct {
	Result Result
	Grid   *puzzle.Grid
	Walls  *puzzle.WallMap
	Stats  Stats
}

// State is the per-solve working state.
type State struct {
	Spec   *puzzle.Spec
	Grid   *puzzle.Grid
	Units  []puzzle.Unit
	Boxes  *puzzle.RegionMap
	Plugin Plugin

	alphabet int
	order    []puzzle.Coord    // open cells; [0:idx) assigned by the search
	cands    []puzzle.ValueSet // per grid cell, live only while tracked
	tracked  []bool            // per grid cell
	opts     Options
	stats    Stats
	memo     *deadCache
	rep      *reporter
	started  time.Time
	lastSort int64 // node count at the last full MRV sort

	// progress gating, touched only by the solving goroutine
	lastStats   time.Time
	lastPartial time.Time
}

// New validates a puzzle description, looks up its family, and
// builds the solve state.  The returned State is ready for one call
// to Solve.
func New(spec *puzzle.Spec, opts Options) (*State, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	fam, ok := LookupFamily(spec.Kind)
	if !ok {
		return nil, puzzle.Error{
			Scope:     puzzle.SpecScope,
			Condition: puzzle.UnknownKindCondition,
			Attribute: puzzle.KindAttribute,
			Values:    puzzle.ErrorData{spec.Kind},
		}
	}
	setup, err := fam.New(spec)
	if err != nil {
		return nil, err
	}
	opts.Normalize()

	st := &State{
		Spec:     spec,
		Grid:     setup.Grid,
		Units:    setup.Units,
		Boxes:    setup.Boxes,
		Plugin:   setup.Plugin,
		alphabet: setup.Alphabet,
		order:    setup.Open,
		opts:     opts,
	}
	if st.order == nil {
		st.order = openCells(st.Grid)
	}
	n := st.Grid.Height * st.Grid.Width
	st.cands = make([]puzzle.ValueSet, n)
	st.tracked = make([]bool, n)
	if opts.MemoSize > 0 {
		st.memo, err = newDeadCache(opts.MemoSize)
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Alphabet returns the number of symbols of the puzzle.
func (st *State) Alphabet() int {
	return st.alphabet
}

// Tracked reports whether a cell currently carries a candidate set.
// Assigned cells and given cells are never tracked.
func (st *State) Tracked(rc puzzle.Coord) bool {
	return st.tracked[st.cell(rc)]
}

// Candidates returns the candidate set of a tracked cell.  For an
// untracked cell it returns a singleton of the assigned value, so
// line-scanning propagators can treat every cell uniformly.
func (st *State) Candidates(rc puzzle.Coord) puzzle.ValueSet {
	i := st.cell(rc)
	if st.tracked[i] {
		return st.cands[i]
	}
	return puzzle.NewValueSet(st.Grid.Value(rc.Row, rc.Col))
}

// SetCandidates narrows a tracked cell's set and returns how many
// candidates that removed.  Growing a set is a programming error the
// method quietly refuses; propagation only ever narrows.
func (st *State) SetCandidates(rc puzzle.Coord, s puzzle.ValueSet) int {
	i := st.cell(rc)
	if !st.tracked[i] {
		return 0
	}
	narrowed := st.cands[i].Intersect(s)
	removed := st.cands[i].Len() - narrowed.Len()
	if removed > 0 {
		st.cands[i] = narrowed
		st.stats.Eliminations += int64(removed)
	}
	return removed
}

// RemoveCandidate removes one value from a tracked cell's set,
// reporting whether it was present.
func (st *State) RemoveCandidate(rc puzzle.Coord, v int) bool {
	i := st.cell(rc)
	if !st.tracked[i] || !st.cands[i].Remove(v) {
		return false
	}
	st.stats.Eliminations++
	return true
}

func (st *State) cell(rc puzzle.Coord) int {
	return rc.Row*st.Grid.Width + rc.Col
}
