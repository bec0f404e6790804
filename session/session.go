package session

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/textstorm/cursor"
	"github.com/dshills/textstorm/document"
	"github.com/dshills/textstorm/history"
)

// Source tags attached to change notifications for provenance.
const (
	SourceUser    = "user"
	SourceHistory = "history"
)

// Session wires a document, a cursor set, and an edit history into one
// editing surface. Edits made through the session are recorded in the
// history; Undo and Redo replay recorded groups against the document and
// restore the matching cursor snapshots.
//
// Session inherits the single-writer contract of its parts and is not
// safe for concurrent use.
type Session struct {
	doc     *document.Document
	cursors *cursor.Set
	hist    *history.History
}

type config struct {
	docOpts  []document.Option
	histOpts []history.Option
}

// Option configures a Session.
type Option func(*config)

// WithHistoryLimit bounds the undo stack depth.
func WithHistoryLimit(n int) Option {
	return func(c *config) {
		c.histOpts = append(c.histOpts, history.WithMaxGroups(n))
	}
}

// WithChangeListener registers a document change listener.
func WithChangeListener(fn func(document.Change)) Option {
	return func(c *config) {
		c.docOpts = append(c.docOpts, document.WithChangeListener(fn))
	}
}

// New creates a session over the given initial text, with one cursor at
// offset 0 and an empty history.
func New(text string, opts ...Option) *Session {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		doc:     document.New(text, cfg.docOpts...),
		cursors: cursor.NewSet(),
		hist:    history.New(cfg.histOpts...),
	}
}

// NewFromBytes creates a session over raw bytes for binary-safe editing.
func NewFromBytes(b []byte, opts ...Option) *Session {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		doc:     document.NewFromBytes(b, cfg.docOpts...),
		cursors: cursor.NewSet(),
		hist:    history.New(cfg.histOpts...),
	}
}

// Document returns the underlying document.
func (s *Session) Document() *document.Document {
	return s.doc
}

// Cursors returns the session's cursor set.
func (s *Session) Cursors() *cursor.Set {
	return s.cursors
}

// History returns the session's edit history.
func (s *Session) History() *history.History {
	return s.hist
}

// Text returns the current document text.
func (s *Session) Text() string {
	return s.doc.Text()
}

// InsertAtCursors inserts text at every cursor, replacing any selections,
// as one atomic transaction. Operations are built back-to-front so
// lower-offset cursors stay valid while higher ones edit. Single-cursor
// plain inserts are recorded coalescable, so typing runs undo in one
// step.
func (s *Session) InsertAtCursors(text string) error {
	if text == "" {
		return nil
	}

	before := s.cursors.Snapshot()
	vBefore := s.doc.Version()

	rev := s.cursors.InReverseOrder()
	ops := make([]document.Operation, 0, len(rev))
	for _, ic := range rev {
		r := ic.Cursor.SelectionRange()
		if r.IsEmpty() {
			ops = append(ops, document.Insert(r.Start, text))
		} else {
			ops = append(ops, document.Replace(r, text))
		}
	}

	res, err := s.doc.Apply(ops, SourceUser)
	if err != nil {
		return fmt.Errorf("insert at cursors: %w", err)
	}

	// Each cursor lands at the end of its inserted text, shifted by the
	// length change of the edits before it.
	curs := s.cursors.Cursors()
	textLen := utf8.RuneCountInString(text)
	updated := make([]cursor.Cursor, len(curs))
	delta := 0
	for i, c := range curs {
		r := c.SelectionRange()
		updated[i] = cursor.At(r.Start + document.Offset(delta+textLen))
		delta += textLen - r.Len()
	}
	s.cursors.SetAll(updated)

	after := s.cursors.Snapshot()
	vAfter := s.doc.Version()

	if len(ops) == 1 && ops[0].Kind == document.OpInsert {
		s.hist.RecordEdit(history.Edit{
			Forward:       ops[0],
			Inverse:       res.Inverses[0],
			CursorsBefore: before,
			CursorsAfter:  after,
			VersionBefore: vBefore,
			VersionAfter:  vAfter,
			Coalescable:   true,
		})
		return nil
	}

	s.hist.BeginGroup(before, vBefore, "insert")
	for i, op := range ops {
		s.hist.RecordEdit(history.Edit{Forward: op, Inverse: res.Inverses[i]})
	}
	s.hist.CommitGroup(after, vAfter)
	return nil
}

// DeleteAtCursors deletes at every cursor as one atomic transaction:
// selections are removed outright, collapsed cursors delete count
// grapheme clusters backward (backspace) or forward (delete key).
func (s *Session) DeleteAtCursors(backward bool, count int) error {
	if count < 1 {
		count = 1
	}

	before := s.cursors.Snapshot()
	vBefore := s.doc.Version()

	curs := s.cursors.Cursors()
	ranges := make([]document.Range, len(curs))

	// Build ranges back-to-front, clamping each against the start of the
	// range above it so the transaction never overlaps itself.
	floor := s.doc.Len()
	for i := len(curs) - 1; i >= 0; i-- {
		c := curs[i]
		var r document.Range
		switch {
		case c.HasSelection():
			r = c.SelectionRange()
		case backward:
			start := c.Position()
			for j := 0; j < count && start > 0; j++ {
				start, _ = s.doc.PrevGraphemeBoundary(start)
			}
			r = document.Range{Start: start, End: c.Position()}
		default:
			end := c.Position()
			for j := 0; j < count && end < s.doc.Len(); j++ {
				end, _ = s.doc.NextGraphemeBoundary(end)
			}
			r = document.Range{Start: c.Position(), End: end}
		}
		if r.End > floor {
			r.End = floor
		}
		if r.Start > r.End {
			r.Start = r.End
		}
		ranges[i] = r
		if r.Start < floor {
			floor = r.Start
		}
	}

	ops := make([]document.Operation, 0, len(ranges))
	for i := len(ranges) - 1; i >= 0; i-- {
		if !ranges[i].IsEmpty() {
			ops = append(ops, document.Delete(ranges[i]))
		}
	}
	if len(ops) == 0 {
		return nil
	}

	res, err := s.doc.Apply(ops, SourceUser)
	if err != nil {
		return fmt.Errorf("delete at cursors: %w", err)
	}

	updated := make([]cursor.Cursor, len(curs))
	delta := 0
	for i := range curs {
		r := ranges[i]
		updated[i] = cursor.At(r.Start + document.Offset(delta))
		delta -= r.Len()
	}
	s.cursors.SetAll(updated)

	after := s.cursors.Snapshot()
	vAfter := s.doc.Version()

	if len(ops) == 1 {
		s.hist.RecordEdit(history.Edit{
			Forward:       ops[0],
			Inverse:       res.Inverses[0],
			CursorsBefore: before,
			CursorsAfter:  after,
			VersionBefore: vBefore,
			VersionAfter:  vAfter,
		})
		return nil
	}

	s.hist.BeginGroup(before, vBefore, "delete")
	for i, op := range ops {
		s.hist.RecordEdit(history.Edit{Forward: op, Inverse: res.Inverses[i]})
	}
	s.hist.CommitGroup(after, vAfter)
	return nil
}

// Replace replaces a range with text as one recorded, non-coalescable
// edit. Cursors are clamped to the possibly shorter document.
func (s *Session) Replace(r document.Range, text string) error {
	before := s.cursors.Snapshot()
	vBefore := s.doc.Version()

	op := document.Replace(r, text)
	res, err := s.doc.Apply([]document.Operation{op}, SourceUser)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}

	s.cursors.ClampAll(s.doc.Len())

	s.hist.RecordEdit(history.Edit{
		Forward:       op,
		Inverse:       res.Inverses[0],
		CursorsBefore: before,
		CursorsAfter:  s.cursors.Snapshot(),
		VersionBefore: vBefore,
		VersionAfter:  s.doc.Version(),
	})
	return nil
}

// SetText replaces the whole document content as one undoable edit.
func (s *Session) SetText(text string) error {
	return s.Replace(document.Range{Start: 0, End: s.doc.Len()}, text)
}

// Undo reverses the most recent edit group: its inverses (already in
// undo order) are applied to the document and the cursors from before
// the group are restored. Returns false when there is nothing to undo.
func (s *Session) Undo() (bool, error) {
	g, ok := s.hist.Undo()
	if !ok {
		return false, nil
	}
	if len(g.Inverses) > 0 {
		if _, err := s.doc.Apply(g.Inverses, SourceHistory); err != nil {
			return false, fmt.Errorf("undo: %w", err)
		}
	}
	s.cursors.Restore(g.CursorsBefore)
	return true, nil
}

// Redo re-applies the most recently undone group and restores the
// cursors from after it. Returns false when there is nothing to redo.
func (s *Session) Redo() (bool, error) {
	g, ok := s.hist.Redo()
	if !ok {
		return false, nil
	}
	if len(g.Operations) > 0 {
		if _, err := s.doc.Apply(g.Operations, SourceHistory); err != nil {
			return false, fmt.Errorf("redo: %w", err)
		}
	}
	s.cursors.Restore(g.CursorsAfter)
	return true, nil
}

// Transaction runs fn inside an explicit undo group. If fn returns an
// error the group is cancelled; edits already applied still affect the
// document, only their undo record is discarded.
func (s *Session) Transaction(label string, fn func(*Session) error) error {
	s.hist.BeginGroup(s.cursors.Snapshot(), s.doc.Version(), label)
	if err := fn(s); err != nil {
		s.hist.CancelGroup()
		return err
	}
	s.hist.CommitGroup(s.cursors.Snapshot(), s.doc.Version())
	return nil
}
