package document

import "errors"

// Errors returned by document operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid document range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrLineOutOfRange indicates a 1-based line number outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrPositionOutOfRange indicates a position outside the document.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrEmptyTransaction indicates Apply was called with no operations.
	ErrEmptyTransaction = errors.New("empty transaction")
)
