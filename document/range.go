package document

import "fmt"

// Range represents a rune span in the document.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// NewRange creates a Range from start and end offsets.
// It fails if end precedes start or either offset is negative.
func NewRange(start, end Offset) (Range, error) {
	if start < 0 || end < start {
		return Range{}, fmt.Errorf("%w: [%d:%d)", ErrRangeInvalid, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in runes.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is well-formed (0 <= Start <= End).
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
// The End offset is excluded; an empty range contains nothing.
func (r Range) Contains(offset Offset) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if the two half-open ranges share at least one
// offset. Adjacent or empty ranges never overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Union returns the smallest range that contains both ranges.
func (r Range) Union(other Range) Range {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// Shift returns a new range shifted by the given rune delta.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + Offset(delta), End: r.End + Offset(delta)}
}
