package scrape

import (
	"strings"

	"gridbot/puzzle"
)

// KindFromPath derives the puzzle family from a page path such as
// "/jigsaw-sudoku/daily".  The family is the first path segment.
func KindFromPath(path string) (puzzle.Kind, error) {
	seg := strings.Trim(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	k := puzzle.Kind(seg)
	if !puzzle.IsKnownKind(k) {
		return "", puzzle.TaskError(seg, puzzle.UnknownKindCondition)
	}
	return k, nil
}

// BuildSpec decodes a scraped task into a typed puzzle description.
// The returned description is already validated.
func BuildSpec(task *Task) (*puzzle.Spec, error) {
	var (
		spec *puzzle.Spec
		err  error
	)
	switch task.Kind {
	case puzzle.Sudoku:
		spec, err = buildSudoku(task.Raw)
	case puzzle.JigsawSudoku:
		spec, err = buildJigsaw(task.Raw)
	case puzzle.KillerSudoku:
		spec, err = buildKiller(task.Raw, task.Variant)
	case puzzle.Futoshiki:
		spec, err = buildCellTable(task.Raw, puzzle.Futoshiki)
	case puzzle.Renzoku:
		spec, err = buildCellTable(task.Raw, puzzle.Renzoku)
	case puzzle.Skyscrapers:
		spec, err = buildSkyscrapers(task.Raw)
	case puzzle.Kakurasu:
		spec, err = buildKakurasu(task.Raw)
	case puzzle.Kurodoko:
		spec, err = buildClueTable(task.Raw, puzzle.Kurodoko)
	case puzzle.SlitherLink:
		spec, err = buildClueTable(task.Raw, puzzle.SlitherLink)
	default:
		return nil, puzzle.TaskError(string(task.Kind), puzzle.UnknownKindCondition)
	}
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// buildSudoku decodes a plain table of givens.  The table codec
// reports empties as NoClue; permutation grids want them as 0.
func buildSudoku(raw string) (*puzzle.Spec, error) {
	givens, err := ParseTable(raw, 0)
	if err != nil {
		return nil, err
	}
	return &puzzle.Spec{
		Kind:   puzzle.Sudoku,
		Height: len(givens),
		Width:  len(givens[0]),
		Givens: blanksToZero(givens),
	}, nil
}

// buildJigsaw decodes "givens;boxes".
func buildJigsaw(raw string) (*puzzle.Spec, error) {
	parts := strings.SplitN(raw, ";", 2)
	if len(parts) != 2 {
		return nil, puzzle.TaskError(raw, puzzle.WrongCountCondition)
	}
	givens, err := ParseTable(parts[0], 0)
	if err != nil {
		return nil, err
	}
	boxes, err := ParseBoxes(parts[1], len(givens))
	if err != nil {
		return nil, err
	}
	return &puzzle.Spec{
		Kind:   puzzle.JigsawSudoku,
		Height: len(givens),
		Width:  len(givens[0]),
		Givens: blanksToZero(givens),
		Boxes:  boxes,
	}, nil
}

// buildKiller decodes "cages;sums".  An "x" variant adds the two
// main diagonals as uniqueness units.
func buildKiller(raw, variant string) (*puzzle.Spec, error) {
	parts := strings.SplitN(raw, ";", 2)
	if len(parts) != 2 {
		return nil, puzzle.TaskError(raw, puzzle.WrongCountCondition)
	}
	cages, err := ParseBoxes(parts[0], 0)
	if err != nil {
		return nil, err
	}
	sums, err := ParseSums(parts[1])
	if err != nil {
		return nil, err
	}
	h, w := cages.Size()
	return &puzzle.Spec{
		Kind:     puzzle.KillerSudoku,
		Height:   h,
		Width:    w,
		Cages:    cages,
		CageSums: sums,
		KillerX:  strings.HasPrefix(variant, "x-") || variant == "x",
	}, nil
}

// buildCellTable decodes a futoshiki or renzoku cell table.  Each
// arrow points at the neighbor on the small side of a futoshiki
// relation, or at a dotted (consecutive) neighbor in renzoku, where
// every undotted neighbor pair must then be non-consecutive.
func buildCellTable(raw string, kind puzzle.Kind) (*puzzle.Spec, error) {
	values, arrows, err := ParseCellTable(raw, 0)
	if err != nil {
		return nil, err
	}
	spec := &puzzle.Spec{
		Kind:   kind,
		Height: len(values),
		Width:  len(values[0]),
		Givens: values,
	}
	for r, row := range arrows {
		for c, cell := range row {
			for _, a := range cell {
				from := puzzle.Coord{Row: r, Col: c}
				to := puzzle.Coord{Row: r + a.DRow, Col: c + a.DCol}
				if !spec.In(to) {
					return nil, puzzle.TaskError(to, puzzle.OutOfRangeCondition)
				}
				if kind == puzzle.Renzoku {
					spec.Adjacent = append(spec.Adjacent,
						puzzle.AdjacencyClue{A: from, B: to})
				} else {
					spec.Orders = append(spec.Orders,
						puzzle.OrderClue{Greater: from, Lesser: to})
				}
			}
		}
	}
	if kind == puzzle.Renzoku {
		spec.Exhaustive = true
	}
	return spec, nil
}

// buildSkyscrapers decodes doubled border clues: the column clues
// come first (all tops, then all bottoms), the row clues after (all
// lefts, then all rights).
func buildSkyscrapers(raw string) (*puzzle.Spec, error) {
	n := (strings.Count(raw, "/") + 1) / 4
	if n < 1 {
		return nil, puzzle.TaskError(raw, puzzle.WrongCountCondition)
	}
	vertical, horizontal, err := ParseBorders(raw, 2*n)
	if err != nil {
		return nil, err
	}
	return &puzzle.Spec{
		Kind:   puzzle.Skyscrapers,
		Height: n,
		Width:  n,
		Top:    vertical[:n],
		Bottom: vertical[n:],
		Left:   horizontal[:n],
		Right:  horizontal[n:],
	}, nil
}

// buildKakurasu decodes border sums: the column targets come first,
// then the row targets.
func buildKakurasu(raw string) (*puzzle.Spec, error) {
	vertical, horizontal, err := ParseBorders(raw, 0)
	if err != nil {
		return nil, err
	}
	return &puzzle.Spec{
		Kind:   puzzle.Kakurasu,
		Height: len(horizontal),
		Width:  len(vertical),
		Top:    vertical,
		Left:   horizontal,
	}, nil
}

// buildClueTable decodes a number clue grid where NoClue already
// means "no clue", matching the description's convention for
// kurodoko and slitherlink.
func buildClueTable(raw string, kind puzzle.Kind) (*puzzle.Spec, error) {
	givens, err := ParseTable(raw, 0)
	if err != nil {
		return nil, err
	}
	return &puzzle.Spec{
		Kind:   kind,
		Height: len(givens),
		Width:  len(givens[0]),
		Givens: givens,
	}, nil
}

func blanksToZero(rows [][]int) [][]int {
	for _, row := range rows {
		for i, v := range row {
			if v == NoClue {
				row[i] = 0
			}
		}
	}
	return rows
}
