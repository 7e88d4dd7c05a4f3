package game2048

import (
	"encoding/json"
	"fmt"
	"math"
)

// Grid size and win target bounds.
const (
	MinGridSize = 2
	MaxGridSize = 10

	MinWinTarget = 4

	DefaultRows      = 4
	DefaultCols      = 4
	DefaultWinTarget = 2048
)

// Config defines the board dimensions and the tile value that wins the game.
type Config struct {
	Rows      int `yaml:"rows" json:"rows"`
	Cols      int `yaml:"cols" json:"cols"`
	WinTarget int `yaml:"win_target" json:"winTarget"`
}

// DefaultConfig returns the classic 4x4 game played to 2048.
func DefaultConfig() Config {
	return Config{
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		WinTarget: DefaultWinTarget,
	}
}

// Validate checks the dimensions and win target.
func (c Config) Validate() error {
	if c.Rows < MinGridSize || c.Rows > MaxGridSize {
		return fmt.Errorf("%w: rows must be between %d and %d, got %d",
			ErrInvalidGridSize, MinGridSize, MaxGridSize, c.Rows)
	}
	if c.Cols < MinGridSize || c.Cols > MaxGridSize {
		return fmt.Errorf("%w: cols must be between %d and %d, got %d",
			ErrInvalidGridSize, MinGridSize, MaxGridSize, c.Cols)
	}
	if c.WinTarget < MinWinTarget || !isPowerOfTwo(c.WinTarget) {
		return fmt.Errorf("%w: must be a power of two >= %d, got %d",
			ErrInvalidWinTarget, MinWinTarget, c.WinTarget)
	}
	return nil
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ParseConfig builds a Config from an untyped record as produced by decoding
// YAML or JSON into an interface value. A nil record yields the defaults.
// Every key is optional; absent keys keep their default. Recognised keys are
// rows, cols and winTarget (or win_target).
func ParseConfig(raw any) (Config, error) {
	cfg := DefaultConfig()
	if raw == nil {
		return cfg, nil
	}

	record, ok := toRecord(raw)
	if !ok {
		return cfg, fmt.Errorf("%w: expected a record, got %T", ErrInvalidConfig, raw)
	}

	if v, ok := record["rows"]; ok {
		n, ok := toInt(v)
		if !ok || n < MinGridSize || n > MaxGridSize {
			return cfg, fmt.Errorf("%w: rows must be a number between %d and %d, got %v",
				ErrInvalidGridSize, MinGridSize, MaxGridSize, v)
		}
		cfg.Rows = n
	}

	if v, ok := record["cols"]; ok {
		n, ok := toInt(v)
		if !ok || n < MinGridSize || n > MaxGridSize {
			return cfg, fmt.Errorf("%w: cols must be a number between %d and %d, got %v",
				ErrInvalidGridSize, MinGridSize, MaxGridSize, v)
		}
		cfg.Cols = n
	}

	for _, key := range []string{"winTarget", "win_target"} {
		v, ok := record[key]
		if !ok {
			continue
		}
		n, ok := toInt(v)
		if !ok || n < MinWinTarget || !isPowerOfTwo(n) {
			return cfg, fmt.Errorf("%w: must be a power of two >= %d, got %v",
				ErrInvalidWinTarget, MinWinTarget, v)
		}
		cfg.WinTarget = n
	}

	return cfg, nil
}

// toRecord converts the map shapes produced by encoding/json and yaml.v3.
func toRecord(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// toInt converts a decoded number to int. Fractional values and values
// outside the int32 range are rejected, so the result is the same on every
// platform.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int64ToInt(n)
	case uint:
		return uint64ToInt(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return uint64ToInt(uint64(n))
	case uint64:
		return uint64ToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int64ToInt(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

func int64ToInt(n int64) (int, bool) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func uint64ToInt(n uint64) (int, bool) {
	if n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
