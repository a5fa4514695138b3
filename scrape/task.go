package scrape

import (
	"math"
	"strconv"
	"strings"

	"gridbot/puzzle"
)

/*

Task string codecs

The site packs each puzzle into one compact string.  Three encodings
cover every family this module solves:

  - table: a dense cell stream.  Digit runs are literal values,
    lower-case letters are runs of empty cells (a=1 .. z=26), and
    underscores separate adjacent numbers.  Decoded empties come back
    as -1 so a literal 0 clue stays distinguishable.
  - borders: clue lists joined with "/", column clues first, then row
    clues.  A non-numeric entry is an absent clue.
  - boxes: comma-separated 1-based region ids in reading order.

Cell tables (futoshiki, renzoku) are comma-separated cells, each an
optional number followed by direction letters pointing at the
neighbor on the small side of the relation.

*/

// NoClue marks an empty position in a decoded table.
const NoClue = puzzle.NoClue

// foldRows folds a flat cell stream into rows.  A zero height means
// a square grid inferred from the length.
func foldRows(flat []int, height int) ([][]int, error) {
	if len(flat) == 0 {
		return nil, puzzle.TaskError(0, puzzle.TooSmallCondition)
	}
	if height == 0 {
		height = int(math.Sqrt(float64(len(flat))))
		if height*height != len(flat) {
			return nil, puzzle.TaskError(len(flat), puzzle.WrongCountCondition)
		}
	}
	if height < 1 || len(flat)%height != 0 {
		return nil, puzzle.TaskError(len(flat), puzzle.WrongCountCondition)
	}
	width := len(flat) / height
	rows := make([][]int, height)
	for r := range rows {
		rows[r] = flat[r*width : (r+1)*width]
	}
	return rows, nil
}

// ParseTable decodes a table task string into rows of values, empty
// cells as NoClue.  Height 0 infers a square grid.
func ParseTable(raw string, height int) ([][]int, error) {
	var flat []int
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch >= '0' && ch <= '9':
			start := i
			for i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '9' {
				i++
			}
			n, err := strconv.Atoi(raw[start : i+1])
			if err != nil {
				return nil, puzzle.TaskError(raw[start:i+1], puzzle.BadEncodingCondition)
			}
			flat = append(flat, n)
		case ch >= 'a' && ch <= 'z':
			for k := 0; k < int(ch-'a')+1; k++ {
				flat = append(flat, NoClue)
			}
		case ch == '_':
			// separates adjacent digit runs
		default:
			return nil, puzzle.TaskError(string(ch), puzzle.BadEncodingCondition)
		}
	}
	return foldRows(flat, height)
}

// ParseBorders decodes a border task string into the vertical
// (column) and horizontal (row) clue lists, absent clues as 0.
// Height 0 assumes equally many row and column clues.
func ParseBorders(raw string, height int) (vertical, horizontal []int, err error) {
	entries := strings.Split(raw, "/")
	clues := make([]int, len(entries))
	for i, entry := range entries {
		if n, err := strconv.Atoi(entry); err == nil && n >= 0 {
			clues[i] = n
		}
	}
	if height == 0 {
		height = len(clues) / 2
	}
	width := len(clues) - height
	if height < 1 || width < 1 {
		return nil, nil, puzzle.TaskError(len(clues), puzzle.WrongCountCondition)
	}
	return clues[:width], clues[width:], nil
}

// ParseBoxes decodes a boxes task string into a region map.  Height
// 0 infers a square grid.
func ParseBoxes(raw string, height int) (*puzzle.RegionMap, error) {
	entries := strings.Split(raw, ",")
	flat := make([]int, len(entries))
	for i, entry := range entries {
		id, err := strconv.Atoi(strings.TrimSpace(entry))
		if err != nil || id < 1 {
			return nil, puzzle.TaskError(entry, puzzle.BadEncodingCondition)
		}
		flat[i] = id - 1
	}
	rows, err := foldRows(flat, height)
	if err != nil {
		return nil, err
	}
	return puzzle.NewRegionMap(rows)
}

// ParseSums decodes a comma-separated integer list (killer cage
// sums).
func ParseSums(raw string) ([]int, error) {
	entries := strings.Split(raw, ",")
	sums := make([]int, len(entries))
	for i, entry := range entries {
		n, err := strconv.Atoi(strings.TrimSpace(entry))
		if err != nil || n < 1 {
			return nil, puzzle.TaskError(entry, puzzle.BadEncodingCondition)
		}
		sums[i] = n
	}
	return sums, nil
}

// A CellArrow is one direction marker in a cell table: the relation
// points from the carrying cell toward the orthogonal neighbor at
// the offset.
type CellArrow struct {
	DRow, DCol int
}

var arrowOffsets = map[byte]CellArrow{
	'D': {DRow: 1},
	'U': {DRow: -1},
	'R': {DCol: 1},
	'L': {DCol: -1},
}

// ParseCellTable decodes a comma-separated cell table: per cell an
// optional given value and the direction markers attached to it.
// Height 0 infers a square grid.
func ParseCellTable(raw string, height int) (values [][]int, arrows [][][]CellArrow, err error) {
	cells := strings.Split(raw, ",")
	flatVals := make([]int, len(cells))
	flatArrows := make([][]CellArrow, len(cells))
	for i, cell := range cells {
		j := 0
		for j < len(cell) && cell[j] >= '0' && cell[j] <= '9' {
			j++
		}
		if j > 0 {
			n, err := strconv.Atoi(cell[:j])
			if err != nil {
				return nil, nil, puzzle.TaskError(cell, puzzle.BadEncodingCondition)
			}
			flatVals[i] = n
		}
		for ; j < len(cell); j++ {
			arrow, ok := arrowOffsets[cell[j]]
			if !ok {
				return nil, nil, puzzle.TaskError(string(cell[j]), puzzle.BadEncodingCondition)
			}
			flatArrows[i] = append(flatArrows[i], arrow)
		}
	}
	values, err = foldRows(flatVals, height)
	if err != nil {
		return nil, nil, err
	}
	h, w := len(values), len(values[0])
	arrows = make([][][]CellArrow, h)
	for r := 0; r < h; r++ {
		arrows[r] = flatArrows[r*w : (r+1)*w]
	}
	return values, arrows, nil
}
