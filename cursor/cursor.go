package cursor

import (
	"fmt"

	"github.com/dshills/textstorm/document"
)

// Offset is an alias for document.Offset for convenience.
type Offset = document.Offset

// Range is an alias for document.Range for convenience.
type Range = document.Range

// Cursor is one insertion point with an optional selection anchor.
// Cursor is an immutable value type. The anchor is the position where a
// selection started; when it equals Position there is no selection.
type Cursor struct {
	position Offset
	anchor   Offset
}

// At creates a cursor at the given offset with no selection.
func At(pos Offset) Cursor {
	if pos < 0 {
		pos = 0
	}
	return Cursor{position: pos, anchor: pos}
}

// Select creates a cursor at pos with a selection anchored at anchor.
func Select(pos, anchor Offset) Cursor {
	if pos < 0 {
		pos = 0
	}
	if anchor < 0 {
		anchor = 0
	}
	return Cursor{position: pos, anchor: anchor}
}

// Position returns the cursor's offset.
func (c Cursor) Position() Offset {
	return c.position
}

// Anchor returns the selection anchor. It equals Position when there is
// no selection.
func (c Cursor) Anchor() Offset {
	return c.anchor
}

// HasSelection returns true if the anchor differs from the position.
func (c Cursor) HasSelection() bool {
	return c.anchor != c.position
}

// SelectionStart returns the lower of position and anchor.
func (c Cursor) SelectionStart() Offset {
	if c.anchor < c.position {
		return c.anchor
	}
	return c.position
}

// SelectionEnd returns the higher of position and anchor.
func (c Cursor) SelectionEnd() Offset {
	if c.anchor > c.position {
		return c.anchor
	}
	return c.position
}

// SelectionRange returns the selected span, empty at the cursor position
// when there is no selection.
func (c Cursor) SelectionRange() Range {
	return Range{Start: c.SelectionStart(), End: c.SelectionEnd()}
}

// ClearSelection returns the cursor with its anchor removed.
func (c Cursor) ClearSelection() Cursor {
	return Cursor{position: c.position, anchor: c.position}
}

// MoveTo returns a collapsed cursor at the given offset.
func (c Cursor) MoveTo(pos Offset) Cursor {
	return At(pos)
}

// ExtendTo returns the cursor moved to pos with its anchor kept, growing
// or shrinking the selection.
func (c Cursor) ExtendTo(pos Offset) Cursor {
	if pos < 0 {
		pos = 0
	}
	return Cursor{position: pos, anchor: c.anchor}
}

// Clamp returns the cursor with position and anchor independently clamped
// into [0, max].
func (c Cursor) Clamp(max Offset) Cursor {
	out := c
	if out.position > max {
		out.position = max
	}
	if out.anchor > max {
		out.anchor = max
	}
	return out
}

// Compare orders cursors by position, then by anchor.
func (c Cursor) Compare(other Cursor) int {
	if c.position != other.position {
		if c.position < other.position {
			return -1
		}
		return 1
	}
	if c.anchor != other.anchor {
		if c.anchor < other.anchor {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if c orders before other.
func (c Cursor) Before(other Cursor) bool {
	return c.Compare(other) < 0
}

// Equals returns true if both position and anchor match.
func (c Cursor) Equals(other Cursor) bool {
	return c.position == other.position && c.anchor == other.anchor
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	if !c.HasSelection() {
		return fmt.Sprintf("Cursor(%d)", c.position)
	}
	return fmt.Sprintf("Cursor(%d, anchor %d)", c.position, c.anchor)
}
