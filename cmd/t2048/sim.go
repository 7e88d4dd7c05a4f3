package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game2048"
)

var (
	flagMoves string
	flagJSON  bool
	flagQuiet bool
)

var simCmd = &cobra.Command{
	Use:   "sim [preset]",
	Short: "Run a move script without a UI",
	Long: `Play a scripted game and print the board after each move.

Moves are letters (U, D, L, R) or words separated by commas or spaces.
The exit status is non-zero if the board, the script or a move is invalid,
including moves sent after the game has ended.

Examples:
  t2048 sim --seed 7 --moves DDRL
  t2048 sim tiny --seed 1 --moves "right,down,right"
  t2048 sim --rows 3 --cols 3 --target 64 --seed 3 --moves UDLRUDLR --json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	addBoardFlags(simCmd)
	simCmd.Flags().StringVar(&flagMoves, "moves", "", "Move script, e.g. DDRL or up,left")
	simCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the final snapshot as JSON")
	simCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the final board")
}

func runSim(cmd *cobra.Command, args []string) {
	if err := simulate(cmd, args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simulate plays the script and writes progress to w.
func simulate(cmd *cobra.Command, args []string, w io.Writer) error {
	preset, _, err := choosePreset(cmd, args)
	if err != nil {
		return err
	}
	moves, err := game2048.ParseMoves(flagMoves)
	if err != nil {
		return err
	}

	cfg := preset.Config
	engine, err := game2048.New(&cfg, game2048.NewSource(flagSeed))
	if err != nil {
		return err
	}

	if !flagQuiet && !flagJSON {
		fmt.Fprintf(w, "%s (%dx%d, target %d)\n", preset.ID, cfg.Rows, cfg.Cols, cfg.WinTarget)
		printBoard(w, engine.Board())
	}

	for i, dir := range moves {
		before := engine.Moves()
		if err := engine.ApplyMove(dir); err != nil {
			if errors.Is(err, game2048.ErrGameAlreadyOver) {
				return fmt.Errorf("move %d (%s): %w", i+1, dir, err)
			}
			return err
		}
		logger.Debug("move", "n", i+1, "dir", dir, "moved", engine.Moves() > before, "score", engine.Score())

		if flagQuiet || flagJSON {
			continue
		}
		note := ""
		if engine.Moves() == before {
			note = " (no change)"
		}
		fmt.Fprintf(w, "\n%d. %s%s  score %d\n", i+1, dir, note, engine.Score())
		printBoard(w, engine.Board())
	}

	snap := engine.Snapshot()
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	if flagQuiet {
		printBoard(w, snap.Board)
	}
	fmt.Fprintf(w, "\nscore %d  max %d  moves %d  %s\n", snap.Score, snap.MaxTile, snap.Moves, snap.State)
	return nil
}

// printBoard writes the board as right-aligned columns, "." for empty.
func printBoard(w io.Writer, board [][]int) {
	width := 1
	for _, row := range board {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}

	for _, row := range board {
		cells := make([]string, len(row))
		for i, v := range row {
			text := "."
			if v != 0 {
				text = strconv.Itoa(v)
			}
			cells[i] = fmt.Sprintf("%*s", width, text)
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, " "))
	}
}
