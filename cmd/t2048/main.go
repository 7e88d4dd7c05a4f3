// t2048 plays the 2048 sliding-tile puzzle in the terminal, over SSH and
// over HTTP.
//
// Usage:
//
//	t2048 list               - List board presets
//	t2048 play [preset]      - Play in the terminal
//	t2048 sim --moves DDRL   - Run a move script without a UI
//	t2048 scores [preset]    - Show high scores
//	t2048 serve              - Start SSH server for remote play
//	t2048 web                - Start the JSON/WebSocket API
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.t2048/scores.db)
//	--config <path>     - Settings file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// Resolved by loadSettings before any subcommand runs.
	settings config.Settings
	logger   *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board up, down, left or right. Equal tiles merge and add to
your score. Reach the target tile to win; run out of moves and you lose.

Available commands:
  list     - Show all board presets
  play     - Play a preset (or pick one from a menu)
  sim      - Replay a move script without a UI
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start the JSON/WebSocket API

Examples:
  t2048 play
  t2048 play mini
  t2048 play --rows 5 --cols 5 --target 4096
  t2048 sim --seed 7 --moves DDRL
  t2048 serve --ssh :2222
  t2048 web --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// loadSettings reads .env, the settings file and the environment, then
// applies command-line overrides.
func loadSettings(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	s, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		s.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		s.Log.Level = flagLogLevel
	}

	settings = s
	logger = newLogger(s.Log.Level)
	return nil
}

// newLogger creates the process logger at the given level.
func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		l.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// openStore opens the scores database. Commands that can run without
// scores pass optional=true and get a nil store on failure.
func openStore(optional bool) (*storage.Store, error) {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		if optional {
			logger.Warn("could not open scores database", "path", settings.Storage.Path, "error", err)
			return nil, nil
		}
		return nil, err
	}
	return store, nil
}
