package document

import "fmt"

// Offset is a 0-based rune index into document text.
// This is the fundamental coordinate type; byte positions are only used
// by the byte-level editing surface.
type Offset int

// NewOffset validates v as a document offset.
func NewOffset(v int) (Offset, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, v)
	}
	return Offset(v), nil
}

// Advance returns the offset shifted by n runes.
// It fails if the result would be negative.
func (o Offset) Advance(n int) (Offset, error) {
	v := int(o) + n
	if v < 0 {
		return 0, fmt.Errorf("%w: %d%+d", ErrOffsetOutOfRange, int(o), n)
	}
	return Offset(v), nil
}

// Diff returns the signed rune distance from other to o.
func (o Offset) Diff(other Offset) int {
	return int(o) - int(other)
}

// String returns a human-readable representation of the offset.
func (o Offset) String() string {
	return fmt.Sprintf("@%d", int(o))
}

// Position represents a line and column position.
// Both Line and Column are 1-indexed; Column is measured in runes.
type Position struct {
	Line   int
	Column int
}

// NewPosition validates line and column as a document position.
func NewPosition(line, column int) (Position, error) {
	if line < 1 || column < 1 {
		return Position{}, fmt.Errorf("%w: (%d:%d)", ErrPositionOutOfRange, line, column)
	}
	return Position{Line: line, Column: column}, nil
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Ordering is lexicographic: line first, then column.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}
