package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/game2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var (
	flagRows   int
	flagCols   int
	flagTarget int
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play 2048 in the terminal",
	Long: `Start a game in the terminal. Without a preset a menu lets you pick one,
unless the settings file or T2048_* variables describe a custom board.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  R                - Restart (after game over)
  Esc/B            - Back to menu
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play big
  t2048 play --rows 3 --cols 5 --target 1024
  t2048 play classic --target 4096`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addBoardFlags(playCmd)
}

// addBoardFlags registers the --rows/--cols/--target overrides.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagRows, "rows", 0, "Board rows (2-10)")
	cmd.Flags().IntVar(&flagCols, "cols", 0, "Board columns (2-10)")
	cmd.Flags().IntVar(&flagTarget, "target", 0, "Winning tile (power of two >= 4)")
}

// choosePreset resolves the board from the preset argument, the settings
// and the board flags. explicit is false when nothing picked a board and
// the built-in default was used.
func choosePreset(cmd *cobra.Command, args []string) (preset registry.Preset, explicit bool, err error) {
	cfg := settings.Game
	if len(args) > 0 {
		p, err := registry.Get(args[0])
		if err != nil {
			return registry.Preset{}, false, err
		}
		preset, cfg, explicit = p, p.Config, true
	} else if cfg != game2048.DefaultConfig() {
		explicit = true
	}

	overridden := false
	if cmd.Flags().Changed("rows") {
		cfg.Rows, overridden = flagRows, true
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols, overridden = flagCols, true
	}
	if cmd.Flags().Changed("target") {
		cfg.WinTarget, overridden = flagTarget, true
	}

	if !overridden && len(args) > 0 {
		return preset, true, nil
	}
	if err := cfg.Validate(); err != nil {
		return registry.Preset{}, false, err
	}
	return registry.Custom(cfg), explicit || overridden, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	preset, explicit, err := choosePreset(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available presets.")
		os.Exit(1)
	}

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, _ := openStore(true)
	if store != nil {
		defer store.Close()
	}

	opts := tui.SessionOptions{
		Player: os.Getenv("USER"),
		Seed:   flagSeed,
		Width:  width,
		Height: height,
		Logger: logger,
	}
	if explicit {
		opts.Preset = &preset
	}

	if err := tui.Run(store, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
