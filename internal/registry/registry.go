// Package registry provides a global registry of named game presets.
// Presets register themselves in init(), allowing the CLI, the menus and the
// web API to discover board shapes without hardcoded lists.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/game2048"
)

// ErrUnknownPreset is returned when a preset ID is not registered.
var ErrUnknownPreset = errors.New("registry: unknown preset")

// DefaultPreset is the preset used when none is given.
const DefaultPreset = "classic"

// Preset is a named, validated game configuration.
type Preset struct {
	ID          string
	Title       string
	Description string
	Config      game2048.Config
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if the ID is empty or taken, or if the config is invalid.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if p.ID == "" {
		panic("registry: preset ID is empty")
	}
	if _, exists := presets[p.ID]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", p.ID))
	}
	if err := p.Config.Validate(); err != nil {
		panic(fmt.Sprintf("registry: preset %q: %v", p.ID, err))
	}

	presets[p.ID] = p
}

// List returns all registered presets, sorted by ID.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the preset with the given ID.
func Get(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, id)
	}
	return p, nil
}

