package registry

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/game2048"
)

// Built-in presets. Targets are chosen to be reachable on each board size.
var builtin = []Preset{
	{ID: "classic", Title: "Classic", Description: "4x4 board, reach 2048", Config: game2048.Config{Rows: 4, Cols: 4, WinTarget: 2048}},
	{ID: "quick", Title: "Quick", Description: "4x4 board, reach 512", Config: game2048.Config{Rows: 4, Cols: 4, WinTarget: 512}},
	{ID: "mini", Title: "Mini", Description: "3x3 board, reach 256", Config: game2048.Config{Rows: 3, Cols: 3, WinTarget: 256}},
	{ID: "tiny", Title: "Tiny", Description: "2x2 board, reach 32", Config: game2048.Config{Rows: 2, Cols: 2, WinTarget: 32}},
	{ID: "wide", Title: "Wide", Description: "3x8 board, reach 2048", Config: game2048.Config{Rows: 3, Cols: 8, WinTarget: 2048}},
	{ID: "big", Title: "Big", Description: "6x6 board, reach 8192", Config: game2048.Config{Rows: 6, Cols: 6, WinTarget: 8192}},
	{ID: "huge", Title: "Huge", Description: "10x10 board, reach 65536", Config: game2048.Config{Rows: 10, Cols: 10, WinTarget: 65536}},
}

func init() {
	for _, p := range builtin {
		Register(p)
	}
}

// Custom returns an unregistered preset for an ad-hoc configuration, so that
// scores of custom boards are grouped by shape and target.
func Custom(cfg game2048.Config) Preset {
	if p, ok := match(cfg); ok {
		return p
	}
	return Preset{
		ID:          fmt.Sprintf("custom-%dx%d-%d", cfg.Rows, cfg.Cols, cfg.WinTarget),
		Title:       "Custom",
		Description: fmt.Sprintf("%dx%d board, reach %d", cfg.Rows, cfg.Cols, cfg.WinTarget),
		Config:      cfg,
	}
}

// match finds a registered preset with exactly this configuration.
func match(cfg game2048.Config) (Preset, bool) {
	for _, p := range List() {
		if p.Config == cfg {
			return p, true
		}
	}
	return Preset{}, false
}
