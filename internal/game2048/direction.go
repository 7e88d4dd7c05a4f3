package game2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all valid directions in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// delta returns the row/col offset of one step toward the edge d pushes into.
func (d Direction) delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 1
	}
}

// ParseDirection parses a direction name. Accepts full names and single
// letters, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// UnmarshalText implements encoding.TextUnmarshaler, so request payloads
// can carry a Direction by name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseMoves parses a move script. Either a compact letter string
// ("DDRL") or a comma/space separated list of names ("down, down, right").
func ParseMoves(script string) ([]Direction, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	// Single compact token like "DDRL"
	if len(fields) == 1 {
		if _, err := ParseDirection(fields[0]); err != nil {
			fields = strings.Split(fields[0], "")
		}
	}

	moves := make([]Direction, 0, len(fields))
	for _, f := range fields {
		dir, err := ParseDirection(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, dir)
	}
	return moves, nil
}
