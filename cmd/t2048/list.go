package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board presets",
	Long:  `Shows every built-in preset with its board size and target tile.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	presets := registry.List()

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-7s  %s\n", maxIDLen, "ID", "Board", "Target", "Description")
	fmt.Printf("  %-*s  %-7s  %-7s  %s\n", maxIDLen, "--", "-----", "------", "-----------")

	for _, p := range presets {
		board := fmt.Sprintf("%dx%d", p.Config.Rows, p.Config.Cols)
		marker := ""
		if p.ID == registry.DefaultPreset {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-7s  %-7d  %s%s\n", maxIDLen, p.ID, board, p.Config.WinTarget, p.Description, marker)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a preset.")
}
