package cursor

import (
	"errors"
	"fmt"
	"sort"
)

// ErrIndexOutOfRange indicates a cursor index outside the set.
var ErrIndexOutOfRange = errors.New("cursor index out of range")

// Set tracks all cursors for one editing session. The sequence is always
// sorted ascending by position and exactly one entry is primary.
// Duplicate or overlapping cursors are kept until MergeOverlapping is
// explicitly invoked.
//
// Set is not safe for concurrent use.
type Set struct {
	cursors []Cursor
	primary int
}

// NewSet creates a set with a single cursor at offset 0.
func NewSet() *Set {
	return &Set{cursors: []Cursor{At(0)}}
}

// Count returns the number of cursors.
func (s *Set) Count() int {
	return len(s.cursors)
}

// Cursors returns a copy of the cursor sequence in ascending order.
func (s *Set) Cursors() []Cursor {
	out := make([]Cursor, len(s.cursors))
	copy(out, s.cursors)
	return out
}

// Get returns the cursor at the given index.
func (s *Set) Get(i int) (Cursor, error) {
	if i < 0 || i >= len(s.cursors) {
		return Cursor{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.cursors))
	}
	return s.cursors[i], nil
}

// Primary returns the primary cursor.
func (s *Set) Primary() Cursor {
	return s.cursors[s.primary]
}

// PrimaryIndex returns the index of the primary cursor.
func (s *Set) PrimaryIndex() int {
	return s.primary
}

// SetPrimary marks the cursor at index i primary.
func (s *Set) SetPrimary(i int) error {
	if i < 0 || i >= len(s.cursors) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.cursors))
	}
	s.primary = i
	return nil
}

// Add inserts a cursor at the given position, keeping the sequence
// sorted, and returns its index. The primary index shifts right if the
// insertion lands at or before it.
func (s *Set) Add(pos Offset) int {
	return s.insert(At(pos))
}

// AddSelection inserts a cursor at pos with a selection anchored at
// anchor and returns its index.
func (s *Set) AddSelection(pos, anchor Offset) int {
	return s.insert(Select(pos, anchor))
}

func (s *Set) insert(c Cursor) int {
	idx := sort.Search(len(s.cursors), func(i int) bool {
		return c.Before(s.cursors[i])
	})
	s.cursors = append(s.cursors, Cursor{})
	copy(s.cursors[idx+1:], s.cursors[idx:])
	s.cursors[idx] = c
	if idx <= s.primary {
		s.primary++
	}
	return idx
}

// Replace overwrites the cursor at index i. The caller is responsible for
// calling Sort afterwards if the new position breaks ordering.
func (s *Set) Replace(i int, c Cursor) error {
	if i < 0 || i >= len(s.cursors) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.cursors))
	}
	s.cursors[i] = c
	return nil
}

// SetAll replaces the whole sequence. The cursors are sorted; the primary
// index is retained when still valid, otherwise reset to the last cursor.
func (s *Set) SetAll(cursors []Cursor) {
	if len(cursors) == 0 {
		s.cursors = []Cursor{At(0)}
		s.primary = 0
		return
	}
	s.cursors = make([]Cursor, len(cursors))
	copy(s.cursors, cursors)
	sort.SliceStable(s.cursors, func(i, j int) bool {
		return s.cursors[i].Before(s.cursors[j])
	})
	if s.primary >= len(s.cursors) {
		s.primary = len(s.cursors) - 1
	}
}

// CollapseToSingle discards all cursors except the primary, which becomes
// index 0.
func (s *Set) CollapseToSingle() {
	s.cursors = []Cursor{s.cursors[s.primary]}
	s.primary = 0
}

// Sort re-sorts the sequence after out-of-band position mutation and
// relocates the primary index to track the moved cursor.
func (s *Set) Sort() {
	order := make([]int, len(s.cursors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.cursors[order[a]].Before(s.cursors[order[b]])
	})

	sorted := make([]Cursor, len(s.cursors))
	newPrimary := 0
	for newIdx, oldIdx := range order {
		sorted[newIdx] = s.cursors[oldIdx]
		if oldIdx == s.primary {
			newPrimary = newIdx
		}
	}
	s.cursors = sorted
	s.primary = newPrimary
}

// MergeOverlapping merges cursors whose positions coincide or whose
// selection ranges overlap into a single cursor spanning the union. When
// the primary cursor is part of a merge, the surviving cursor is primary.
func (s *Set) MergeOverlapping() {
	if len(s.cursors) <= 1 {
		return
	}

	// Scan in selection-start order: a backward selection extends left
	// of its position, so the set's position order can separate cursors
	// whose ranges form an overlap chain.
	order := make([]int, len(s.cursors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.cursors[order[a]].SelectionStart() < s.cursors[order[b]].SelectionStart()
	})

	merged := make([]Cursor, 0, len(s.cursors))
	newPrimary := -1

	cur := s.cursors[order[0]]
	curHasPrimary := order[0] == s.primary
	for _, idx := range order[1:] {
		next := s.cursors[idx]
		if mergeable(cur, next) {
			cur = merge(cur, next)
			if idx == s.primary {
				curHasPrimary = true
			}
			continue
		}
		if curHasPrimary {
			newPrimary = len(merged)
		}
		merged = append(merged, cur)
		cur = next
		curHasPrimary = idx == s.primary
	}
	if curHasPrimary {
		newPrimary = len(merged)
	}
	merged = append(merged, cur)

	s.cursors = merged
	if newPrimary >= 0 {
		s.primary = newPrimary
	} else {
		s.primary = 0
	}
	s.Sort()
}

// mergeable reports whether two cursors (a before b in selection-start
// order) coincide or have overlapping selections.
func mergeable(a, b Cursor) bool {
	if a.Position() == b.Position() {
		return true
	}
	ra, rb := a.SelectionRange(), b.SelectionRange()
	return ra.Overlaps(rb) || ra.Contains(b.Position()) || rb.Contains(a.Position())
}

// merge combines two cursors into one spanning the union of their
// selections, keeping a's orientation.
func merge(a, b Cursor) Cursor {
	u := a.SelectionRange().Union(b.SelectionRange())
	if u.IsEmpty() {
		return At(u.Start)
	}
	if a.Position() >= a.Anchor() {
		return Select(u.End, u.Start)
	}
	return Select(u.Start, u.End)
}

// IndexedCursor pairs a cursor with its index in ascending order.
type IndexedCursor struct {
	Cursor Cursor
	Index  int
}

// InReverseOrder returns the cursors from highest position to lowest,
// each with its original index. Multi-cursor edits must be applied
// back-to-front so edits at higher offsets do not invalidate the
// positions of cursors before them.
func (s *Set) InReverseOrder() []IndexedCursor {
	out := make([]IndexedCursor, len(s.cursors))
	for i := range s.cursors {
		j := len(s.cursors) - 1 - i
		out[i] = IndexedCursor{Cursor: s.cursors[j], Index: j}
	}
	return out
}

// ClampAll clamps every cursor's position and anchor into [0, docLen].
// Call after any edit that shrinks the document.
func (s *Set) ClampAll(docLen Offset) {
	for i, c := range s.cursors {
		s.cursors[i] = c.Clamp(docLen)
	}
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	out := &Set{
		cursors: make([]Cursor, len(s.cursors)),
		primary: s.primary,
	}
	copy(out.cursors, s.cursors)
	return out
}

// Snapshot is an immutable capture of a cursor set, used by the edit
// history to remember cursor state around an edit group.
type Snapshot struct {
	cursors []Cursor
	primary int
}

// Snapshot captures the ordered cursor list and primary index.
func (s *Set) Snapshot() Snapshot {
	out := Snapshot{
		cursors: make([]Cursor, len(s.cursors)),
		primary: s.primary,
	}
	copy(out.cursors, s.cursors)
	return out
}

// Restore replaces the set's state with a previously captured snapshot.
func (s *Set) Restore(snap Snapshot) {
	if len(snap.cursors) == 0 {
		s.cursors = []Cursor{At(0)}
		s.primary = 0
		return
	}
	s.cursors = make([]Cursor, len(snap.cursors))
	copy(s.cursors, snap.cursors)
	s.primary = snap.primary
	if s.primary < 0 || s.primary >= len(s.cursors) {
		s.primary = 0
	}
}

// Cursors returns a copy of the snapshot's cursor list.
func (sn Snapshot) Cursors() []Cursor {
	out := make([]Cursor, len(sn.cursors))
	copy(out, sn.cursors)
	return out
}

// PrimaryIndex returns the snapshot's primary index.
func (sn Snapshot) PrimaryIndex() int {
	return sn.primary
}

// Count returns the number of cursors in the snapshot.
func (sn Snapshot) Count() int {
	return len(sn.cursors)
}
