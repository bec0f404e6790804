// Package session combines a document, cursor set, and edit history into
// a single editing surface.
//
// The parts remain independently usable; the session adds the glue an
// interactive caller needs: multi-cursor inserts and deletes applied
// back-to-front in one transaction, history recording with typing
// coalescence, grouped transactions, and undo/redo that replays groups
// against the document and restores cursor snapshots.
//
//	s := session.New("Hello")
//	s.Cursors().Replace(0, cursor.At(5))
//	s.InsertAtCursors(" world")  // "Hello world"
//	s.Undo()                     // "Hello", cursor back at 5
package session
