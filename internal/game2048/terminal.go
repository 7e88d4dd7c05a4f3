package game2048

// checkFinished updates the terminal flags after a move that changed the
// board. Reaching the win target takes precedence over a full board.
func (e *Engine) checkFinished() {
	if e.grid.contains(e.cfg.WinTarget) {
		e.won = true
		e.gameOver = true
		return
	}

	if !e.CanMove() {
		e.gameOver = true
	}
}

// CanMove reports whether any direction would change the board.
func (e *Engine) CanMove() bool {
	return e.grid.hasEmpty() || e.grid.hasAdjacentPair()
}
