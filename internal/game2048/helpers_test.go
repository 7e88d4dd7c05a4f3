package game2048

import (
	"fmt"
	"testing"
)

// scriptedSource replays a fixed list of draws and fails the test if the
// engine asks for more draws than scripted or for an out-of-range value.
type scriptedSource struct {
	t     *testing.T
	draws []int
	pos   int
}

func newScripted(t *testing.T, draws ...int) *scriptedSource {
	return &scriptedSource{t: t, draws: draws}
}

func (s *scriptedSource) Intn(n int) int {
	s.t.Helper()
	if s.pos >= len(s.draws) {
		s.t.Fatalf("unexpected random draw #%d (n=%d)", s.pos+1, n)
	}
	v := s.draws[s.pos]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted draw #%d = %d out of range [0,%d)", s.pos+1, v, n)
	}
	s.pos++
	return v
}

func (s *scriptedSource) remaining() int {
	return len(s.draws) - s.pos
}

// zeroSource always picks the first empty cell and the value 2.
type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

// engineFromBoard builds an engine with a preset board, bypassing seeding.
func engineFromBoard(t *testing.T, board [][]int, target int, src Source) *Engine {
	t.Helper()
	rows, cols := len(board), len(board[0])
	e := &Engine{
		cfg:  Config{Rows: rows, Cols: cols, WinTarget: target},
		grid: newGrid(rows, cols),
		rng:  src,
	}
	for r, row := range board {
		if len(row) != cols {
			t.Fatalf("row %d has %d cols, want %d", r, len(row), cols)
		}
		for c, v := range row {
			e.grid.at(r, c).Value = v
		}
	}
	return e
}

func boardString(b [][]int) string {
	s := ""
	for _, row := range b {
		s += fmt.Sprintln(row)
	}
	return s
}

func assertBoard(t *testing.T, got, want [][]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("board has %d rows, want %d\ngot:\n%swant:\n%s", len(got), len(want), boardString(got), boardString(want))
	}
	for r := range want {
		if len(got[r]) != len(want[r]) {
			t.Fatalf("row %d has %d cols, want %d", r, len(got[r]), len(want[r]))
		}
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Fatalf("board mismatch at (%d,%d)\ngot:\n%swant:\n%s", r, c, boardString(got), boardString(want))
			}
		}
	}
}
