package storage

import (
	"strings"
	"testing"

	"gridbot/puzzle"
	"gridbot/solve"
)

func TestTaskHash(t *testing.T) {
	h1 := TaskHash(puzzle.Sudoku, "1a3a2b1d4c")
	h2 := TaskHash(puzzle.Sudoku, "1a3a2b1d4d")
	h3 := TaskHash(puzzle.Kurodoko, "1a3a2b1d4c")
	if !strings.HasPrefix(h1, "sudoku:") {
		t.Errorf("hash %q doesn't name the family", h1)
	}
	if h1 == h2 {
		t.Error("different tasks hashed alike")
	}
	if h1 == h3 {
		t.Error("different families hashed alike")
	}
	if h1 != TaskHash(puzzle.Sudoku, "1a3a2b1d4c") {
		t.Error("hashing isn't stable")
	}
}

func TestSolutionCodecGrid(t *testing.T) {
	in := &solve.Solution{
		Result: solve.Solved,
		Grid:   puzzle.NewGridValues([][]int{{1, 2}, {2, 1}}),
	}
	data, err := encodeSolution(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := decodeSolution(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Result != solve.Solved {
		t.Errorf("result came back %v", out.Result)
	}
	if out.Grid == nil || out.Grid.Value(1, 0) != 2 {
		t.Error("grid values lost in the round trip")
	}
	if out.Walls != nil {
		t.Error("a grid solution grew walls")
	}
}

func TestSolutionCodecWalls(t *testing.T) {
	walls := puzzle.NewWallMap(1, 2)
	walls.Horizontal[0][0] = true
	walls.Vertical[0][1] = true
	in := &solve.Solution{Result: solve.Solved, Walls: walls}
	data, err := encodeSolution(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := decodeSolution(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Walls == nil {
		t.Fatal("walls lost in the round trip")
	}
	if !out.Walls.Horizontal[0][0] || !out.Walls.Vertical[0][1] {
		t.Error("wall edges lost in the round trip")
	}
	if out.Walls.Height != 1 || out.Walls.Width != 2 {
		t.Errorf("wall dimensions came back %dx%d", out.Walls.Height, out.Walls.Width)
	}
}

func TestDecodeSolutionRejectsGarbage(t *testing.T) {
	if _, err := decodeSolution([]byte("not msgpack")); err == nil {
		t.Error("garbage decoded without error")
	}
}

// A store connected with no URLs must absorb every call.
func TestDisabledStoreIsSilent(t *testing.T) {
	s, err := Connect("", "")
	if err != nil {
		t.Fatalf("Connect with no URLs failed: %v", err)
	}
	defer s.Close()

	sol := &solve.Solution{
		Result: solve.Solved,
		Grid:   puzzle.NewGridValues([][]int{{1}}),
	}
	if err := s.PutSolution(puzzle.Sudoku, "1", sol); err != nil {
		t.Errorf("PutSolution on a disabled cache: %v", err)
	}
	got, err := s.GetSolution(puzzle.Sudoku, "1")
	if err != nil || got != nil {
		t.Errorf("GetSolution on a disabled cache: %v, %v", got, err)
	}
	if err := s.SaveRun(puzzle.Sudoku, "daily", sol); err != nil {
		t.Errorf("SaveRun on a disabled archive: %v", err)
	}
	runs, err := s.RecentRuns(10)
	if err != nil || runs != nil {
		t.Errorf("RecentRuns on a disabled archive: %v, %v", runs, err)
	}
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	s.Close()
}
