package game2048

import (
	"errors"
	"testing"
)

func TestNewInitialState(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		rows int
		cols int
	}{
		{name: "default", cfg: nil, rows: 4, cols: 4},
		{name: "2x2", cfg: &Config{Rows: 2, Cols: 2, WinTarget: 8}, rows: 2, cols: 2},
		{name: "3x7", cfg: &Config{Rows: 3, Cols: 7, WinTarget: 2048}, rows: 3, cols: 7},
		{name: "10x10", cfg: &Config{Rows: 10, Cols: 10, WinTarget: 65536}, rows: 10, cols: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				e, err := New(tt.cfg, NewSource(seed))
				if err != nil {
					t.Fatalf("New() failed: %v", err)
				}

				board := e.Board()
				if len(board) != tt.rows {
					t.Fatalf("board has %d rows, want %d", len(board), tt.rows)
				}

				nonEmpty := 0
				for _, row := range board {
					if len(row) != tt.cols {
						t.Fatalf("row has %d cols, want %d", len(row), tt.cols)
					}
					for _, v := range row {
						switch v {
						case 0:
						case 2, 4:
							nonEmpty++
						default:
							t.Fatalf("unexpected seed tile value %d", v)
						}
					}
				}

				if nonEmpty != 2 {
					t.Errorf("seed %d: %d non-empty tiles, want 2", seed, nonEmpty)
				}
				if e.Score() != 0 {
					t.Errorf("Score() = %d, want 0", e.Score())
				}
				if e.IsGameOver() || e.DidPlayerWin() {
					t.Error("new game should be neither over nor won")
				}
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"rows too small", Config{Rows: 1, Cols: 4, WinTarget: 2048}, ErrInvalidGridSize},
		{"cols too large", Config{Rows: 4, Cols: 11, WinTarget: 2048}, ErrInvalidGridSize},
		{"zero rows", Config{Rows: 0, Cols: 4, WinTarget: 2048}, ErrInvalidGridSize},
		{"target not power of two", Config{Rows: 4, Cols: 4, WinTarget: 6}, ErrInvalidWinTarget},
		{"target zero", Config{Rows: 4, Cols: 4, WinTarget: 0}, ErrInvalidWinTarget},
		{"target two", Config{Rows: 4, Cols: 4, WinTarget: 2}, ErrInvalidWinTarget},
		{"negative target", Config{Rows: 4, Cols: 4, WinTarget: -8}, ErrInvalidWinTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			e, err := New(&cfg, zeroSource{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if e != nil {
				t.Error("New() should not return an engine on error")
			}
		})
	}
}

func TestNewSeedsTwoTilesOnTinyBoard(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, WinTarget: 4}
	e, err := New(&cfg, newScripted(t, 1, 1, 2, 0))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	assertBoard(t, e.Board(), [][]int{
		{0, 4},
		{0, 2},
	})
}

// Classic 4x4 game replayed with a scripted random source.
func TestDefaultGameScenario(t *testing.T) {
	src := newScripted(t,
		6, 0, 7, 0, // seed tiles: 2 at (1,2), 2 at (2,0)
		4, 1, // DOWN: 4 at (1,0)
		11, 0, // DOWN: 2 at (3,1)
		// DOWN: nothing moves, no draws
		9, 1, // RIGHT: 4 at (2,1)
		10, 0, // RIGHT: 2 at (2,2)
	)

	e, err := New(nil, src)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	assertBoard(t, e.Board(), [][]int{
		{0, 0, 0, 0},
		{0, 0, 2, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
	})

	steps := []struct {
		dir   Direction
		board [][]int
		score int
	}{
		{DirDown, [][]int{
			{0, 0, 0, 0},
			{4, 0, 0, 0},
			{0, 0, 0, 0},
			{2, 0, 2, 0},
		}, 0},
		{DirDown, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{4, 0, 0, 0},
			{2, 2, 2, 0},
		}, 0},
		{DirDown, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{4, 0, 0, 0},
			{2, 2, 2, 0},
		}, 0},
		{DirRight, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 4, 0, 4},
			{0, 0, 2, 4},
		}, 4},
		{DirRight, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 2, 8},
			{0, 0, 2, 4},
		}, 12},
	}

	for i, step := range steps {
		if err := e.ApplyMove(step.dir); err != nil {
			t.Fatalf("step %d: ApplyMove(%s) failed: %v", i+1, step.dir, err)
		}
		assertBoard(t, e.Board(), step.board)
		if e.Score() != step.score {
			t.Errorf("step %d: Score() = %d, want %d", i+1, e.Score(), step.score)
		}
		if e.IsGameOver() {
			t.Fatalf("step %d: game should not be over", i+1)
		}
	}

	if src.remaining() != 0 {
		t.Errorf("%d scripted draws unused", src.remaining())
	}
	if e.Moves() != 4 {
		t.Errorf("Moves() = %d, want 4", e.Moves())
	}
}

// twoByTwoDraws seeds [[0,2],[2,0]] and drives RIGHT, DOWN, RIGHT.
func twoByTwoDraws(t *testing.T, extra ...int) *scriptedSource {
	draws := []int{
		1, 0, 1, 0, // seed: 2 at (0,1), 2 at (1,0)
		0, 1, // RIGHT: 4 at (0,0)
		1, 0, // DOWN: 2 at (0,1)
		1, 1, // RIGHT: 4 at (1,0)
	}
	return newScripted(t, append(draws, extra...)...)
}

func TestTwoByTwoWin(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, WinTarget: 8}
	e, err := New(&cfg, twoByTwoDraws(t))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	assertBoard(t, e.Board(), [][]int{{0, 2}, {2, 0}})

	mustMove(t, e, DirRight)
	assertBoard(t, e.Board(), [][]int{{4, 2}, {0, 2}})

	mustMove(t, e, DirDown)
	assertBoard(t, e.Board(), [][]int{{0, 2}, {4, 4}})
	if e.Score() != 4 || e.IsGameOver() {
		t.Fatalf("after DOWN: score=%d over=%v, want 4 false", e.Score(), e.IsGameOver())
	}

	mustMove(t, e, DirRight)
	assertBoard(t, e.Board(), [][]int{{0, 2}, {4, 8}})
	if e.Score() != 12 {
		t.Errorf("Score() = %d, want 12", e.Score())
	}
	if !e.IsGameOver() || !e.DidPlayerWin() {
		t.Fatalf("over=%v won=%v, want true true", e.IsGameOver(), e.DidPlayerWin())
	}
	if e.State() != StateWon {
		t.Errorf("State() = %s, want %s", e.State(), StateWon)
	}

	// Moving after the end fails and leaves everything unchanged.
	err = e.ApplyMove(DirUp)
	if !errors.Is(err, ErrGameAlreadyOver) {
		t.Fatalf("ApplyMove after win: err = %v, want ErrGameAlreadyOver", err)
	}
	assertBoard(t, e.Board(), [][]int{{0, 2}, {4, 8}})
	if e.Score() != 12 || !e.DidPlayerWin() || e.Moves() != 3 {
		t.Errorf("state changed after rejected move: score=%d won=%v moves=%d", e.Score(), e.DidPlayerWin(), e.Moves())
	}
}

func TestTwoByTwoLoss(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, WinTarget: 2048}
	e, err := New(&cfg, twoByTwoDraws(t, 0, 0)) // UP: 2 at (1,0)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	mustMove(t, e, DirRight)
	mustMove(t, e, DirDown)
	mustMove(t, e, DirRight)
	if e.IsGameOver() {
		t.Fatal("game should continue below the win target")
	}

	mustMove(t, e, DirUp)
	assertBoard(t, e.Board(), [][]int{{4, 2}, {2, 8}})
	if e.Score() != 12 {
		t.Errorf("Score() = %d, want 12", e.Score())
	}
	if !e.IsGameOver() {
		t.Error("full board without pairs should end the game")
	}
	if e.DidPlayerWin() {
		t.Error("loss should not set DidPlayerWin")
	}
	if e.State() != StateLost {
		t.Errorf("State() = %s, want %s", e.State(), StateLost)
	}
	if err := e.ApplyMove(DirLeft); !errors.Is(err, ErrGameAlreadyOver) {
		t.Errorf("ApplyMove after loss: err = %v, want ErrGameAlreadyOver", err)
	}
}

func TestNoOpMoveChangesNothing(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 0, 0},
		{4, 0, 0},
		{8, 2, 0},
	}, 2048, newScripted(t)) // any draw fails the test

	for _, dir := range []Direction{DirLeft, DirDown} {
		if err := e.ApplyMove(dir); err != nil {
			t.Fatalf("ApplyMove(%s) failed: %v", dir, err)
		}
		assertBoard(t, e.Board(), [][]int{
			{2, 0, 0},
			{4, 0, 0},
			{8, 2, 0},
		})
	}
	if e.Score() != 0 || e.Moves() != 0 {
		t.Errorf("score=%d moves=%d after no-op moves, want 0 0", e.Score(), e.Moves())
	}
}

func TestWinTakesPrecedenceWithEmptyCells(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 4, zeroSource{})

	mustMove(t, e, DirLeft)
	if !e.IsGameOver() || !e.DidPlayerWin() {
		t.Fatalf("over=%v won=%v, want true true", e.IsGameOver(), e.DidPlayerWin())
	}
	if e.Score() != 4 {
		t.Errorf("Score() = %d, want 4", e.Score())
	}
}

func TestWinCheckedBeforeFullBoard(t *testing.T) {
	// After LEFT the board is full and holds the target.
	e := engineFromBoard(t, [][]int{
		{4, 4, 2},
		{2, 8, 4},
		{4, 2, 8},
	}, 8, zeroSource{})

	mustMove(t, e, DirLeft)
	assertBoard(t, e.Board(), [][]int{
		{8, 2, 2},
		{2, 8, 4},
		{4, 2, 8},
	})
	if !e.DidPlayerWin() {
		t.Error("reaching the target should win even on a full board")
	}
}

func TestFullBoardWithPairContinues(t *testing.T) {
	// LEFT fills the board, but the spawned 2 pairs with its neighbour.
	e := engineFromBoard(t, [][]int{
		{0, 2},
		{4, 8},
	}, 2048, zeroSource{})

	mustMove(t, e, DirLeft)
	assertBoard(t, e.Board(), [][]int{{2, 2}, {4, 8}})
	if e.IsGameOver() {
		t.Fatal("game over with a mergeable pair on the board")
	}
	if !e.CanMove() {
		t.Error("CanMove() = false with a mergeable pair")
	}
}

func TestApplyMoveRejectsUnknownDirection(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 0},
		{0, 2},
	}, 2048, newScripted(t))

	err := e.ApplyMove(Direction(42))
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("err = %v, want ErrInvalidDirection", err)
	}
	assertBoard(t, e.Board(), [][]int{{2, 0}, {0, 2}})
}

func TestBoardIsACopy(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 0},
		{0, 4},
	}, 2048, zeroSource{})

	board := e.Board()
	board[0][0] = 1024
	if e.Board()[0][0] != 2 {
		t.Error("mutating Board() result changed engine state")
	}
}

func TestSpawnOnFullBoardIsNoop(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 4},
		{8, 16},
	}, 2048, newScripted(t))

	e.spawnTile()
	assertBoard(t, e.Board(), [][]int{{2, 4}, {8, 16}})
}

func TestSpawnPicksAmongEmptyCells(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 0, 0},
		{0, 4, 0},
	}, 2048, newScripted(t, 3, 1))

	// Empty cells in row-major order: (0,1) (0,2) (1,0) (1,2).
	e.spawnTile()
	assertBoard(t, e.Board(), [][]int{
		{2, 0, 0},
		{0, 4, 4},
	})
}

func TestSnapshot(t *testing.T) {
	e := engineFromBoard(t, [][]int{
		{2, 2},
		{0, 8},
	}, 16, zeroSource{})

	mustMove(t, e, DirLeft)
	snap := e.Snapshot()

	if snap.Rows != 2 || snap.Cols != 2 || snap.WinTarget != 16 {
		t.Errorf("snapshot dimensions = %dx%d/%d", snap.Rows, snap.Cols, snap.WinTarget)
	}
	assertBoard(t, snap.Board, [][]int{{4, 2}, {8, 0}})
	if snap.Score != 4 || snap.MaxTile != 8 || snap.Moves != 1 {
		t.Errorf("snapshot score=%d max=%d moves=%d, want 4 8 1", snap.Score, snap.MaxTile, snap.Moves)
	}
	if snap.State != StatePlaying {
		t.Errorf("snapshot state = %s, want %s", snap.State, StatePlaying)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() [][]int {
		e, err := New(nil, NewSource(1234))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		for i := 0; i < 50 && !e.IsGameOver(); i++ {
			if err := e.ApplyMove(Directions[i%len(Directions)]); err != nil {
				t.Fatalf("ApplyMove failed: %v", err)
			}
		}
		return e.Board()
	}

	assertBoard(t, play(), play())
}

func mustMove(t *testing.T, e *Engine, dir Direction) {
	t.Helper()
	if err := e.ApplyMove(dir); err != nil {
		t.Fatalf("ApplyMove(%s) failed: %v", dir, err)
	}
}
