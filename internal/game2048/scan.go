package game2048

// slide runs one directional scan and reports whether any tile moved.
//
// Lines are visited starting next to the target edge and moving away from it;
// the edge line itself is never a source. Within a line the far end is
// visited first. A tile already pushed flush against the edge is therefore
// never re-examined, and a chain of tiles settles in a single pass.
func (e *Engine) slide(dir Direction) bool {
	dr, dc := dir.delta()
	moved := false

	if dr != 0 {
		// Vertical: lines are rows, visit columns right to left.
		for _, row := range sourceLines(e.grid.rows, dr) {
			for col := e.grid.cols - 1; col >= 0; col-- {
				if e.advance(row, col, dr, dc) {
					moved = true
				}
			}
		}
		return moved
	}

	// Horizontal: lines are columns, visit rows bottom to top.
	for _, col := range sourceLines(e.grid.cols, dc) {
		for row := e.grid.rows - 1; row >= 0; row-- {
			if e.advance(row, col, dr, dc) {
				moved = true
			}
		}
	}
	return moved
}

// sourceLines returns the line indices that can hold a source tile, nearest
// the edge first. step is +1 when pushing toward index n-1, -1 toward 0.
func sourceLines(n, step int) []int {
	lines := make([]int, 0, n-1)
	if step > 0 {
		for i := n - 2; i >= 0; i-- {
			lines = append(lines, i)
		}
		return lines
	}
	for i := 1; i < n; i++ {
		lines = append(lines, i)
	}
	return lines
}

// advance pushes the tile at (row, col) one cell at a time by (dr, dc) until
// it hits the edge, an unequal tile, or merges. Reports whether it moved.
func (e *Engine) advance(row, col, dr, dc int) bool {
	if e.grid.at(row, col).Value == 0 {
		return false
	}

	moved := false
	for {
		nextRow, nextCol := row+dr, col+dc
		if !e.grid.inBounds(nextRow, nextCol) {
			return moved
		}

		src := e.grid.at(row, col)
		dst := e.grid.at(nextRow, nextCol)

		switch {
		case dst.Value == 0:
			// Move tile
			dst.Value = src.Value
			src.Value = 0
			row, col = nextRow, nextCol
			moved = true

		case !dst.Merged && dst.Value == src.Value:
			// Merge and stop: a tile merges at most once per move.
			dst.Value += src.Value
			dst.Merged = true
			src.Value = 0
			e.score += dst.Value
			return true

		default:
			return moved
		}
	}
}
