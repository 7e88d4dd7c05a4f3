// Package config provides YAML-based settings loading for t2048, with
// environment overrides for container and SSH deployments.
package config

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/game2048"
)

// Settings contains all configuration for the CLI and servers.
type Settings struct {
	Game    game2048.Config
	Storage StorageSettings
	SSH     SSHSettings
	Web     WebSettings
	Log     LogSettings
}

// StorageSettings defines where scores are kept.
type StorageSettings struct {
	Path string `yaml:"path"`
}

// SSHSettings defines the wish SSH server.
type SSHSettings struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WebSettings defines the HTTP API server.
type WebSettings struct {
	Address        string        `yaml:"address"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// GameTTL evicts games nobody has touched for this long.
	GameTTL time.Duration `yaml:"game_ttl"`
	// FinishedTTL evicts finished games sooner.
	FinishedTTL time.Duration `yaml:"finished_ttl"`
	// AllowedOrigins lists extra WebSocket origins besides the server's own
	// host. "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogSettings defines logging verbosity.
type LogSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// fileSettings mirrors the YAML layout. The game section stays untyped so
// it goes through game2048.ParseConfig and its validation.
type fileSettings struct {
	Game    any             `yaml:"game"`
	Storage StorageSettings `yaml:"storage"`
	SSH     SSHSettings     `yaml:"ssh"`
	Web     WebSettings     `yaml:"web"`
	Log     LogSettings     `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Game: game2048.DefaultConfig(),
		Storage: StorageSettings{
			Path: "~/.t2048/scores.db",
		},
		SSH: SSHSettings{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Web: WebSettings{
			Address:        ":8080",
			RequestTimeout: 10 * time.Second,
			GameTTL:        time.Hour,
			FinishedTTL:    5 * time.Minute,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
