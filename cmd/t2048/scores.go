package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores",
	Long: `Display the top 10 results for a preset, or a summary of every
preset that has been played.

Examples:
  t2048 scores
  t2048 scores classic
  t2048 scores tiny --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results for the preset")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := openStore(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a preset")
			os.Exit(1)
		}
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Custom boards are stored under generated IDs, so only the title
	// lookup depends on the registry.
	presetID := args[0]
	title := presetID
	if p, err := registry.Get(presetID); err == nil {
		title = p.Title
	}

	if flagClear {
		if err := store.ClearScores(presetID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", presetID)
		return
	}

	scores, err := store.TopScores(presetID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", presetID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-4s  %-12s  %s\n", "Rank", "Score", "Max", "Moves", "Won", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-4s  %-12s  %s\n", "----", "-----", "---", "-----", "---", "------", "----")

	for i, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-5d  %-4s  %-12s  %s\n",
			i+1, entry.Score, entry.MaxTile, entry.Moves, won, entry.Player,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(presetID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Wins: %d  Best: %d  Average: %.0f  Best tile: %d\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestTile)
	}
}

// printSummary shows one line per played preset.
func printSummary(store *storage.Store) error {
	ids, err := store.Presets()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-5s  %-8s  %s\n", "Preset", "Games", "Wins", "Best", "Last played")
	fmt.Printf("  %-16s  %-6s  %-5s  %-8s  %s\n", "------", "-----", "----", "----", "-----------")
	for _, id := range ids {
		stats, err := store.Stats(id)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s  %-6d  %-5d  %-8d  %s\n",
			id, stats.GamesCount, stats.Wins, stats.HighScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
