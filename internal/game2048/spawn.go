package game2048

// spawnTile places a 2 or a 4 (even odds) in a random empty cell.
// On a full board it does nothing.
func (e *Engine) spawnTile() {
	emptyCells := e.grid.emptyCells()
	if len(emptyCells) == 0 {
		return
	}

	// Pick random empty cell
	cell := emptyCells[e.rng.Intn(len(emptyCells))]

	value := 2
	if e.rng.Intn(2) == 1 {
		value = 4
	}

	e.grid.at(cell.Row, cell.Col).Value = value
}
