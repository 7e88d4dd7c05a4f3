package game2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying GameStateType = "playing"
	StateWon     GameStateType = "won"
	StateLost    GameStateType = "lost"
)

// Snapshot is a read-only copy of everything a front-end needs to draw the
// game or report its outcome.
type Snapshot struct {
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	WinTarget int           `json:"winTarget"`
	Board     [][]int       `json:"board"`
	Score     int           `json:"score"`
	MaxTile   int           `json:"maxTile"`
	Moves     int           `json:"moves"`
	State     GameStateType `json:"state"`
}

// State returns the current game state.
func (e *Engine) State() GameStateType {
	switch {
	case e.won:
		return StateWon
	case e.gameOver:
		return StateLost
	default:
		return StatePlaying
	}
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Rows:      e.cfg.Rows,
		Cols:      e.cfg.Cols,
		WinTarget: e.cfg.WinTarget,
		Board:     e.grid.values(),
		Score:     e.score,
		MaxTile:   e.grid.maxValue(),
		Moves:     e.moves,
		State:     e.State(),
	}
}
