package history

import (
	"time"

	"github.com/dshills/textstorm/cursor"
	"github.com/dshills/textstorm/document"
)

// Offset is an alias for document.Offset for convenience.
type Offset = document.Offset

// EditGroup is one undo/redo unit: a run of operations recorded together
// through coalescing or explicit grouping.
type EditGroup struct {
	// Label is an optional human-readable name from BeginGroup.
	Label string

	// Operations holds the forward operations in application order.
	Operations []document.Operation

	// Inverses holds the inverse operations in reverse application
	// order: replaying them front to back undoes the group, since
	// operation N must be reversed before operation N-1.
	Inverses []document.Operation

	// CursorsBefore and CursorsAfter capture the cursor set immediately
	// before the group began and immediately after it committed.
	CursorsBefore cursor.Snapshot
	CursorsAfter  cursor.Snapshot

	VersionBefore uint64
	VersionAfter  uint64

	Timestamp time.Time

	// open marks the group as still eligible for typing coalescence.
	open bool
	// tailEnd is the end offset of the last operation's new text, or -1
	// when the last operation left no insertion tail to type after.
	tailEnd Offset
}

// Len returns the number of operations in the group.
func (g *EditGroup) Len() int {
	return len(g.Operations)
}

// IsEmpty returns true if the group holds no operations.
func (g *EditGroup) IsEmpty() bool {
	return len(g.Operations) == 0
}

// tailEndOf returns the offset a subsequent coalescable insert must start
// at, or -1 when op cannot be typed after.
func tailEndOf(op document.Operation) Offset {
	switch op.Kind {
	case document.OpInsert, document.OpReplace:
		return op.NewRange().End
	default:
		return -1
	}
}
