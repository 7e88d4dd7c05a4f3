package game2048

// Tile is a single cell: its value (0 = empty) and whether it already
// absorbed another tile during the current move.
type Tile struct {
	Value  int
	Merged bool
}

// cell addresses a tile by row and column.
type cell struct {
	Row int
	Col int
}

// Grid is a rows x cols board stored row-major in a flat slice.
type Grid struct {
	rows  int
	cols  int
	tiles []Tile
}

// newGrid allocates an empty grid.
func newGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		tiles: make([]Tile, rows*cols),
	}
}

// inBounds reports whether (row, col) lies on the grid.
func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// at returns a pointer to the tile at (row, col). Caller checks bounds.
func (g *Grid) at(row, col int) *Tile {
	return &g.tiles[row*g.cols+col]
}

// resetMerged clears the merged flag on every tile.
func (g *Grid) resetMerged() {
	for i := range g.tiles {
		g.tiles[i].Merged = false
	}
}

// emptyCells returns all empty cells in row-major order.
func (g *Grid) emptyCells() []cell {
	var cells []cell
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.at(r, c).Value == 0 {
				cells = append(cells, cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// hasEmpty reports whether at least one cell is empty.
func (g *Grid) hasEmpty() bool {
	for i := range g.tiles {
		if g.tiles[i].Value == 0 {
			return true
		}
	}
	return false
}

// contains reports whether any tile holds exactly value.
func (g *Grid) contains(value int) bool {
	for i := range g.tiles {
		if g.tiles[i].Value == value {
			return true
		}
	}
	return false
}

// hasAdjacentPair reports whether any cell equals its right or lower neighbour.
func (g *Grid) hasAdjacentPair() bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			val := g.at(r, c).Value
			// Check bottom neighbor
			if r < g.rows-1 && g.at(r+1, c).Value == val {
				return true
			}
			// Check right neighbor
			if c < g.cols-1 && g.at(r, c+1).Value == val {
				return true
			}
		}
	}
	return false
}

// maxValue returns the highest tile value.
func (g *Grid) maxValue() int {
	maxVal := 0
	for i := range g.tiles {
		if g.tiles[i].Value > maxVal {
			maxVal = g.tiles[i].Value
		}
	}
	return maxVal
}

// values returns a fresh rows x cols copy of the tile values.
func (g *Grid) values() [][]int {
	out := make([][]int, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			row[c] = g.at(r, c).Value
		}
		out[r] = row
	}
	return out
}
