package history

import (
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/textstorm/cursor"
	"github.com/dshills/textstorm/document"
)

// DefaultMaxGroups is the default undo-stack depth.
const DefaultMaxGroups = 1000

// Edit carries everything RecordEdit needs about one applied operation.
type Edit struct {
	Forward document.Operation
	Inverse document.Operation

	CursorsBefore cursor.Snapshot
	CursorsAfter  cursor.Snapshot

	VersionBefore uint64
	VersionAfter  uint64

	// Coalescable marks the edit as eligible for typing coalescence.
	// Whether it actually coalesces also depends on the adjacency rule;
	// see RecordEdit.
	Coalescable bool
}

// History manages undo/redo state for one editing session.
//
// Single edits arrive through RecordEdit, which either opens a new group
// or coalesces adjacent typing into the most recent one. Explicit groups
// nest through BeginGroup/CommitGroup; only the outermost commit pushes.
//
// History is not safe for concurrent use.
type History struct {
	undo []*EditGroup
	redo []*EditGroup

	// Explicit grouping state.
	pending *EditGroup
	depth   int

	maxGroups int
}

// Option configures a History.
type Option func(*History)

// WithMaxGroups bounds the undo stack; oldest groups are discarded first.
func WithMaxGroups(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxGroups = n
		}
	}
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{maxGroups: DefaultMaxGroups}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RecordEdit records a single applied edit. Inside an explicit group the
// edit accumulates into the pending group. Otherwise it coalesces into
// the top undo group when all of the following hold: that group is still
// open for coalescing, both edits were recorded coalescable, and the new
// edit is a single-grapheme insert starting exactly at the end of the
// previous operation's new text. Any other edit starts a new group.
//
// Recording always clears the redo stack.
func (h *History) RecordEdit(e Edit) {
	if h.depth > 0 {
		h.pending.Operations = append(h.pending.Operations, e.Forward)
		h.pending.Inverses = append([]document.Operation{e.Inverse}, h.pending.Inverses...)
		h.pending.tailEnd = tailEndOf(e.Forward)
		return
	}

	h.redo = nil

	if top := h.top(); top != nil && h.canCoalesce(top, e) {
		top.Operations = append(top.Operations, e.Forward)
		top.Inverses = append([]document.Operation{e.Inverse}, top.Inverses...)
		top.CursorsAfter = e.CursorsAfter
		top.VersionAfter = e.VersionAfter
		top.tailEnd = tailEndOf(e.Forward)
		return
	}

	g := &EditGroup{
		Operations:    []document.Operation{e.Forward},
		Inverses:      []document.Operation{e.Inverse},
		CursorsBefore: e.CursorsBefore,
		CursorsAfter:  e.CursorsAfter,
		VersionBefore: e.VersionBefore,
		VersionAfter:  e.VersionAfter,
		Timestamp:     time.Now(),
		open:          e.Coalescable,
		tailEnd:       tailEndOf(e.Forward),
	}
	h.push(g)
}

// canCoalesce applies the adjacency rule for typing coalescence.
func (h *History) canCoalesce(top *EditGroup, e Edit) bool {
	if !top.open || top.tailEnd < 0 || !e.Coalescable {
		return false
	}
	op := e.Forward
	if op.Kind != document.OpInsert {
		return false
	}
	if uniseg.GraphemeClusterCount(op.Text) != 1 {
		return false
	}
	return op.Range.Start == top.tailEnd
}

// BeginGroup opens an explicit group, or deepens nesting if one is
// already open. Cursors and version are captured only by the outermost
// call.
func (h *History) BeginGroup(cursorsNow cursor.Snapshot, versionBefore uint64, label string) {
	h.depth++
	if h.depth > 1 {
		return
	}
	h.pending = &EditGroup{
		Label:         label,
		CursorsBefore: cursorsNow,
		VersionBefore: versionBefore,
		Timestamp:     time.Now(),
		tailEnd:       -1,
	}
}

// CommitGroup closes one nesting level. Only the outermost commit pushes
// the accumulated group onto the undo stack; a group that recorded no
// operations is discarded.
func (h *History) CommitGroup(cursorsNow cursor.Snapshot, versionAfter uint64) {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	g := h.pending
	h.pending = nil
	if g == nil || g.IsEmpty() {
		return
	}
	g.CursorsAfter = cursorsNow
	g.VersionAfter = versionAfter

	h.redo = nil
	h.push(g)
}

// CancelGroup discards the pending group without pushing anything,
// regardless of nesting depth.
func (h *History) CancelGroup() {
	h.depth = 0
	h.pending = nil
}

// IsGrouping returns true while an explicit group is open.
func (h *History) IsGrouping() bool {
	return h.depth > 0
}

// Undo pops the top undo group, pushes it onto the redo stack, and
// returns it. The caller applies the group's Inverses (already in undo
// order) and restores CursorsBefore. Returns false when there is nothing
// to undo.
func (h *History) Undo() (*EditGroup, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	g.open = false
	// An undo breaks any typing run below it.
	if top := h.top(); top != nil {
		top.open = false
	}
	h.redo = append(h.redo, g)
	return g, true
}

// Redo pops the top redo group, pushes it back onto the undo stack, and
// returns it. The caller re-applies the group's Operations and restores
// CursorsAfter. Returns false when there is nothing to redo.
func (h *History) Redo() (*EditGroup, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	return g, true
}

// GroupsSince returns the undo-stack groups recorded after the given
// document version, in recording order. The slice is a copy; the groups
// themselves are shared, so treat them as read-only.
func (h *History) GroupsSince(version uint64) []*EditGroup {
	var out []*EditGroup
	for _, g := range h.undo {
		if g.VersionAfter > version {
			out = append(out, g)
		}
	}
	return out
}

// CanUndo returns true if the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int {
	return len(h.redo)
}

// PeekUndo returns the next undo group without popping it.
func (h *History) PeekUndo() (*EditGroup, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	return h.undo[len(h.undo)-1], true
}

// PeekRedo returns the next redo group without popping it.
func (h *History) PeekRedo() (*EditGroup, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	return h.redo[len(h.redo)-1], true
}

// Clear empties both stacks and discards any pending group.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.pending = nil
	h.depth = 0
}

func (h *History) top() *EditGroup {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[len(h.undo)-1]
}

func (h *History) push(g *EditGroup) {
	h.undo = append(h.undo, g)
	if len(h.undo) > h.maxGroups {
		excess := len(h.undo) - h.maxGroups
		h.undo = h.undo[excess:]
	}
}
