package mines

import "errors"

var (
	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested size and mine count. No partial board is produced.
	ErrInvalidConfiguration = errors.New("invalid board configuration")

	// ErrOutOfBounds is returned for coordinates outside [0, size).
	ErrOutOfBounds = errors.New("cell out of bounds")
)
