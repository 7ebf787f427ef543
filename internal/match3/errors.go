package match3

import "errors"

var (
	// ErrOutOfRange is returned for a position outside the grid.
	ErrOutOfRange = errors.New("position out of range")

	// ErrInvalidSwap is returned when the two positions are not adjacent.
	ErrInvalidSwap = errors.New("tiles are not adjacent")

	// ErrBusy is returned when a swap is requested outside the InPlay phase.
	ErrBusy = errors.New("board is busy")

	// ErrEmptyTypeSet is returned when the configured type count is not positive.
	ErrEmptyTypeSet = errors.New("tile type set is empty")

	// ErrNoLegalMoveAfterGeneration is returned when the generator runs out of
	// attempts without producing a board that has a legal move.
	ErrNoLegalMoveAfterGeneration = errors.New("no legal move after board generation")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid board config")
)
