package filter

import "errors"

var (
	ErrInvalidFalsePositiveRate = errors.New("filter: false positive rate must be in (0, 1)")
	ErrZeroExpectedItems        = errors.New("filter: expected item count must be positive")
	ErrUnknownAlgorithm         = errors.New("filter: unknown hash algorithm")

	// ErrPositionOutOfRange is the panic value when a reduced hash lands
	// outside the bit array. It only happens if a filter was built with a
	// zero-length array.
	ErrPositionOutOfRange = errors.New("filter: bit position out of range")
)
