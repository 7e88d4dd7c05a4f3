package game2048

import "errors"

// Errors returned by the engine. Callers should match them with errors.Is,
// since validation failures are wrapped with the offending value.
var (
	ErrInvalidConfig    = errors.New("game2048: invalid config")
	ErrInvalidGridSize  = errors.New("game2048: invalid grid size")
	ErrInvalidWinTarget = errors.New("game2048: invalid win target")
	ErrGameAlreadyOver  = errors.New("game2048: game has already ended")
	ErrInvalidDirection = errors.New("game2048: invalid direction")
)

// ErrorCode returns a short machine-readable code for an engine error,
// or "internal" for anything else.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, ErrInvalidGridSize):
		return "invalid_grid_size"
	case errors.Is(err, ErrInvalidWinTarget):
		return "invalid_win_target"
	case errors.Is(err, ErrGameAlreadyOver):
		return "game_already_over"
	case errors.Is(err, ErrInvalidDirection):
		return "invalid_direction"
	default:
		return "internal"
	}
}
