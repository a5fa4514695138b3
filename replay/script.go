// Package replay turns a solved puzzle back into the input gestures
// that would enter it on the puzzle site: digit writes for numeric
// grids, taps for shading grids, strokes along lattice edges for
// loop puzzles.  Steps carry jittered delays so a driver replaying
// them paces like a person.
package replay

import (
	"math/rand"
	"time"

	"gridbot/puzzle"
	"gridbot/solve"
)

// An ActionKind tags what gesture a Step performs.
type ActionKind int

const (
	// WriteAction types a value key with the cell focused.
	WriteAction ActionKind = iota
	// TapAction clicks a cell, Count times.
	TapAction
	// StrokeAction draws one lattice edge between two grid points.
	StrokeAction
)

// A Step is one input gesture plus the pause to take before it.
type Step struct {
	Kind  ActionKind
	Cell  puzzle.Coord // write and tap target
	Key   byte         // key for writes
	Count int          // repetitions for taps
	From  puzzle.Coord // stroke endpoints, lattice point coordinates
	To    puzzle.Coord
	Delay time.Duration
}

// Delay bounds for the human pacing jitter.
const (
	MinDelay = 50 * time.Millisecond
	MaxDelay = 150 * time.Millisecond
)

// A Scripter builds input scripts.  The random source drives the
// delay jitter; tests pass a seeded one.
type Scripter struct {
	rng *rand.Rand
}

// NewScripter makes a script builder with the given jitter seed.
func NewScripter(seed int64) *Scripter {
	return &Scripter{rng: rand.New(rand.NewSource(seed))}
}

// Script converts a solved puzzle into the gesture sequence that
// enters it, in reading order.  Cells the description already gave
// are skipped.
func (s *Scripter) Script(spec *puzzle.Spec, sol *solve.Solution) ([]Step, error) {
	if sol.Result != solve.Solved {
		return nil, puzzle.Error{
			Scope:     puzzle.InternalScope,
			Condition: puzzle.GeneralCondition,
			Attribute: puzzle.ValueAttribute,
			Values:    puzzle.ErrorData{sol.Result, "nothing to replay"},
		}
	}
	var steps []Step
	switch spec.Kind {
	case puzzle.SlitherLink:
		steps = s.strokes(sol.Walls)
	case puzzle.Kurodoko:
		steps = s.taps(spec, sol.Grid, solve.ShadeBlack, puzzle.NoClue)
	case puzzle.Kakurasu:
		steps = s.taps(spec, sol.Grid, solve.TallyFill, 0)
	default:
		steps = s.writes(spec, sol.Grid)
	}
	return steps, nil
}

// ValueKey maps a cell value to the key that enters it.  Values past
// 9 continue through the letters, the way large grids label their
// symbols.
func ValueKey(v int) byte {
	if v <= 9 {
		return byte('0' + v)
	}
	return byte('a' + v - 10)
}

// writes scripts one key press per cell the solver filled.
func (s *Scripter) writes(spec *puzzle.Spec, g *puzzle.Grid) []Step {
	var steps []Step
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if spec.Givens != nil && spec.Givens[r][c] != 0 {
				continue
			}
			steps = append(steps, s.step(Step{
				Kind: WriteAction,
				Cell: puzzle.Coord{Row: r, Col: c},
				Key:  ValueKey(g.Value(r, c)),
			}))
		}
	}
	return steps
}

// taps scripts clicks on every cell the solver put into the target
// state.  Cells the description already decided (given != empty)
// stay untouched.
func (s *Scripter) taps(spec *puzzle.Spec, g *puzzle.Grid, target, empty int) []Step {
	var steps []Step
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if spec.Givens != nil && spec.Givens[r][c] != empty {
				continue
			}
			if g.Value(r, c) != target {
				continue
			}
			steps = append(steps, s.step(Step{
				Kind:  TapAction,
				Cell:  puzzle.Coord{Row: r, Col: c},
				Count: 1,
			}))
		}
	}
	return steps
}

// strokes scripts one drag per loop edge, horizontals in reading
// order first, then verticals.  Stroke endpoints are lattice points,
// so a grid of H x W cells addresses points up to (H, W).
func (s *Scripter) strokes(m *puzzle.WallMap) []Step {
	var steps []Step
	for r := range m.Horizontal {
		for c, on := range m.Horizontal[r] {
			if on {
				steps = append(steps, s.step(Step{
					Kind: StrokeAction,
					From: puzzle.Coord{Row: r, Col: c},
					To:   puzzle.Coord{Row: r, Col: c + 1},
				}))
			}
		}
	}
	for r := range m.Vertical {
		for c, on := range m.Vertical[r] {
			if on {
				steps = append(steps, s.step(Step{
					Kind: StrokeAction,
					From: puzzle.Coord{Row: r, Col: c},
					To:   puzzle.Coord{Row: r + 1, Col: c},
				}))
			}
		}
	}
	return steps
}

// step stamps a jittered delay onto a gesture.
func (s *Scripter) step(st Step) Step {
	span := int64(MaxDelay - MinDelay)
	st.Delay = MinDelay + time.Duration(s.rng.Int63n(span+1))
	return st
}

// Duration sums the delays of a script, the floor for how long a
// driver will take to replay it.
func Duration(steps []Step) time.Duration {
	var total time.Duration
	for _, st := range steps {
		total += st.Delay
	}
	return total
}
