package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tileColors maps tile values to foreground/background colors.
// Values past the table reuse the last entry.
var tileColors = []struct {
	value  int
	fg, bg lipgloss.Color
}{
	{2, "235", "255"},
	{4, "235", "230"},
	{8, "255", "215"},
	{16, "255", "209"},
	{32, "255", "203"},
	{64, "255", "196"},
	{128, "235", "227"},
	{256, "235", "221"},
	{512, "235", "220"},
	{1024, "235", "214"},
	{2048, "235", "226"},
	{4096, "255", "99"},
	{8192, "255", "63"},
}

var (
	emptyTileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Background(lipgloss.Color("236"))
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	hudLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	hudValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	wonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	lostStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style for a tile value.
func tileStyle(value int) lipgloss.Style {
	if value == 0 {
		return emptyTileStyle
	}
	c := tileColors[len(tileColors)-1]
	for _, tc := range tileColors {
		if tc.value >= value {
			c = tc
			break
		}
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c.fg).Background(c.bg)
}

// CellWidth returns the tile width needed to print every value up to target.
func CellWidth(target int) int {
	return max(len(strconv.Itoa(target)), 4) + 2
}

// RenderBoard draws the grid as colored tiles inside a rounded border.
func RenderBoard(board [][]int, cellWidth int) string {
	lines := make([]string, len(board))
	for r, row := range board {
		cells := make([]string, len(row))
		for c, v := range row {
			text := "·"
			if v != 0 {
				text = strconv.Itoa(v)
			}
			cells[c] = tileStyle(v).
				Width(cellWidth).
				Align(lipgloss.Center).
				Render(text)
		}
		lines[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(strings.Join(lines, "\n"))
}

// renderStat draws one "LABEL value" HUD entry.
func renderStat(label string, value int) string {
	return hudLabelStyle.Render(label+" ") + hudValueStyle.Render(strconv.Itoa(value))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
