package game2048

import "fmt"

// Engine owns the state of a single game.
type Engine struct {
	cfg  Config
	grid *Grid
	rng  Source

	score    int
	moves    int
	gameOver bool
	won      bool
}

// New creates a game with the given configuration and random source.
// A nil config means DefaultConfig. A nil source is seeded from the clock.
// Two seed tiles are placed before New returns.
func New(cfg *Config, src Source) (*Engine, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSource(0)
	}

	e := &Engine{
		cfg:  c,
		grid: newGrid(c.Rows, c.Cols),
		rng:  src,
	}

	// Spawn initial tiles (2 tiles)
	e.spawnTile()
	e.spawnTile()

	return e, nil
}

// Rows returns the number of rows on the board.
func (e *Engine) Rows() int { return e.cfg.Rows }

// Cols returns the number of columns on the board.
func (e *Engine) Cols() int { return e.cfg.Cols }

// WinTarget returns the tile value that wins the game.
func (e *Engine) WinTarget() int { return e.cfg.WinTarget }

// Board returns a copy of the tile values, 0 for empty cells.
func (e *Engine) Board() [][]int { return e.grid.values() }

// Score returns the sum of all merged tile values so far.
func (e *Engine) Score() int { return e.score }

// Moves returns how many moves changed the board.
func (e *Engine) Moves() int { return e.moves }

// MaxTile returns the highest tile value on the board.
func (e *Engine) MaxTile() int { return e.grid.maxValue() }

// IsGameOver reports whether the game has ended, by winning or by running
// out of moves.
func (e *Engine) IsGameOver() bool { return e.gameOver }

// DidPlayerWin reports whether the game ended because the win target was
// reached.
func (e *Engine) DidPlayerWin() bool { return e.won }

// ApplyMove slides every tile toward dir, merging equal neighbours at most
// once per tile. If anything moved, one new tile is spawned and the terminal
// conditions are evaluated. A move that changes nothing is a no-op.
//
// ApplyMove fails with ErrGameAlreadyOver once the game has ended and with
// ErrInvalidDirection for unknown directions; neither mutates the game.
func (e *Engine) ApplyMove(dir Direction) error {
	if e.gameOver {
		return ErrGameAlreadyOver
	}
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	e.grid.resetMerged()

	if !e.slide(dir) {
		// Board didn't change - don't spawn new tile
		return nil
	}

	e.moves++
	e.spawnTile()
	e.checkFinished()
	return nil
}
