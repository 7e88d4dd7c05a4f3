package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/game2048"
)

// Environment variables that override file settings.
const (
	EnvRows      = "T2048_ROWS"
	EnvCols      = "T2048_COLS"
	EnvWinTarget = "T2048_WIN_TARGET"
	EnvDB        = "T2048_DB"
	EnvSSHAddr   = "T2048_SSH_ADDR"
	EnvWebAddr   = "T2048_WEB_ADDR"
	EnvLogLevel  = "T2048_LOG_LEVEL"
)

// Load loads settings and applies environment overrides.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
func Load(customPath string) (Settings, error) {
	s, err := loadFile(customPath)
	if err != nil {
		return s, err
	}
	if err := ApplyEnv(&s); err != nil {
		return s, err
	}
	return s, nil
}

func loadFile(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		return Parse(data)
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "t2048.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		s, err := Parse(data)
		if err != nil {
			return s, fmt.Errorf("config: %s: %w", path, err)
		}
		return s, nil
	}

	// Use embedded default YAML
	s, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return s, nil
}

// Parse decodes a settings document. Missing sections keep their defaults.
func Parse(data []byte) (Settings, error) {
	def := Default()
	raw := fileSettings{
		Storage: def.Storage,
		SSH:     def.SSH,
		Web:     def.Web,
		Log:     def.Log,
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return def, fmt.Errorf("config: failed to parse settings: %w", err)
	}

	game, err := game2048.ParseConfig(raw.Game)
	if err != nil {
		return def, fmt.Errorf("config: game section: %w", err)
	}

	return Settings{
		Game:    game,
		Storage: raw.Storage,
		SSH:     raw.SSH,
		Web:     raw.Web,
		Log:     raw.Log,
	}, nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; existing variables are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from T2048_* environment variables.
func ApplyEnv(s *Settings) error {
	record := map[string]any{
		"rows":      s.Game.Rows,
		"cols":      s.Game.Cols,
		"winTarget": s.Game.WinTarget,
	}
	for key, env := range map[string]string{"rows": EnvRows, "cols": EnvCols, "winTarget": EnvWinTarget} {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			record[key] = n
		} else {
			record[key] = v // rejected by ParseConfig with the field's error
		}
	}

	game, err := game2048.ParseConfig(record)
	if err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	s.Game = game

	if v := os.Getenv(EnvDB); v != "" {
		s.Storage.Path = v
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		s.SSH.Address = v
	}
	if v := os.Getenv(EnvWebAddr); v != "" {
		s.Web.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.Log.Level = v
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}
