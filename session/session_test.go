package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textstorm/cursor"
	"github.com/dshills/textstorm/document"
)

func cursorPositions(s *Session) []document.Offset {
	curs := s.Cursors().Cursors()
	out := make([]document.Offset, len(curs))
	for i, c := range curs {
		out[i] = c.Position()
	}
	return out
}

func TestTypingAndUndo(t *testing.T) {
	s := New("")

	for _, ch := range []string{"a", "b", "c"} {
		s.Cursors().SetAll([]cursor.Cursor{cursor.At(s.Document().Len())})
		if err := s.InsertAtCursors(ch); err != nil {
			t.Fatalf("insert %q: %v", ch, err)
		}
	}
	if s.Text() != "abc" {
		t.Fatalf("expected %q, got %q", "abc", s.Text())
	}
	if s.History().UndoCount() != 1 {
		t.Fatalf("typing run coalesces into one group, got %d", s.History().UndoCount())
	}

	ok, err := s.Undo()
	if err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if s.Text() != "" {
		t.Errorf("one undo reverses the whole run, got %q", s.Text())
	}
	if s.Cursors().Primary().Position() != 0 {
		t.Errorf("cursors restored, got %d", s.Cursors().Primary().Position())
	}
}

func TestTypingSequenceCoalesces(t *testing.T) {
	s := New("")

	// Consecutive InsertAtCursors calls type at the advancing cursor.
	for _, ch := range []string{"h", "i", "!"} {
		if err := s.InsertAtCursors(ch); err != nil {
			t.Fatal(err)
		}
	}
	if s.Text() != "hi!" {
		t.Fatalf("expected %q, got %q", "hi!", s.Text())
	}
	if s.History().UndoCount() != 1 {
		t.Errorf("expected one coalesced group, got %d", s.History().UndoCount())
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	s := New("Hello world")
	s.Cursors().SetAll([]cursor.Cursor{cursor.Select(11, 6)})

	if err := s.InsertAtCursors("Go"); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "Hello Go" {
		t.Errorf("expected %q, got %q", "Hello Go", s.Text())
	}
	if s.Cursors().Primary().Position() != 8 {
		t.Errorf("cursor lands after the inserted text, got %d", s.Cursors().Primary().Position())
	}
}

func TestMultiCursorInsert(t *testing.T) {
	s := New("a b c")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(1), cursor.At(3), cursor.At(5)})

	if err := s.InsertAtCursors("X"); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "aX bX cX" {
		t.Fatalf("expected %q, got %q", "aX bX cX", s.Text())
	}

	want := []document.Offset{2, 5, 8}
	if diff := cmp.Diff(want, cursorPositions(s)); diff != "" {
		t.Errorf("cursor positions (-want +got):\n%s", diff)
	}
	if s.Document().Version() != 1 {
		t.Errorf("multi-cursor insert is one transaction, version %d", s.Document().Version())
	}
}

func TestMultiCursorInsertUndo(t *testing.T) {
	s := New("a b c")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(1), cursor.At(3), cursor.At(5)})
	if err := s.InsertAtCursors("X"); err != nil {
		t.Fatal(err)
	}

	ok, err := s.Undo()
	if err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if s.Text() != "a b c" {
		t.Errorf("expected %q, got %q", "a b c", s.Text())
	}
	want := []document.Offset{1, 3, 5}
	if diff := cmp.Diff(want, cursorPositions(s)); diff != "" {
		t.Errorf("cursor positions (-want +got):\n%s", diff)
	}
}

func TestBackspace(t *testing.T) {
	s := New("Hello")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(5)})

	if err := s.DeleteAtCursors(true, 1); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "Hell" {
		t.Errorf("expected %q, got %q", "Hell", s.Text())
	}
	if s.Cursors().Primary().Position() != 4 {
		t.Errorf("expected cursor at 4, got %d", s.Cursors().Primary().Position())
	}
}

func TestBackspaceGraphemeCluster(t *testing.T) {
	s := New("aé") // "a" + "é" as base plus combining mark
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(3)})

	if err := s.DeleteAtCursors(true, 1); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "a" {
		t.Errorf("backspace removes the whole cluster, got %q", s.Text())
	}
}

func TestForwardDelete(t *testing.T) {
	s := New("Hello")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(0)})

	if err := s.DeleteAtCursors(false, 2); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "llo" {
		t.Errorf("expected %q, got %q", "llo", s.Text())
	}
	if s.Cursors().Primary().Position() != 0 {
		t.Errorf("forward delete keeps the cursor in place, got %d", s.Cursors().Primary().Position())
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	s := New("Hello")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(0)})

	if err := s.DeleteAtCursors(true, 1); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "Hello" {
		t.Errorf("expected unchanged text, got %q", s.Text())
	}
	if s.History().CanUndo() {
		t.Error("a no-op delete records nothing")
	}
}

func TestDeleteSelection(t *testing.T) {
	s := New("Hello world")
	s.Cursors().SetAll([]cursor.Cursor{cursor.Select(11, 5)})

	if err := s.DeleteAtCursors(true, 1); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", s.Text())
	}
}

func TestMultiCursorBackspace(t *testing.T) {
	s := New("aX bX cX")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(2), cursor.At(5), cursor.At(8)})

	if err := s.DeleteAtCursors(true, 1); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "a b c" {
		t.Fatalf("expected %q, got %q", "a b c", s.Text())
	}
	want := []document.Offset{1, 3, 5}
	if diff := cmp.Diff(want, cursorPositions(s)); diff != "" {
		t.Errorf("cursor positions (-want +got):\n%s", diff)
	}

	ok, err := s.Undo()
	if err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if s.Text() != "aX bX cX" {
		t.Errorf("undo restores all deletions, got %q", s.Text())
	}
}

func TestOverlappingBackspacesClamp(t *testing.T) {
	// Two cursors one rune apart: the lower backspace must not eat into
	// the range the upper one already deleted.
	s := New("ab")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(1), cursor.At(2)})

	if err := s.DeleteAtCursors(true, 2); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "" {
		t.Errorf("expected empty text, got %q", s.Text())
	}
}

func TestReplace(t *testing.T) {
	s := New("Hello world")

	if err := s.Replace(document.Range{Start: 6, End: 11}, "Go"); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "Hello Go" {
		t.Errorf("expected %q, got %q", "Hello Go", s.Text())
	}

	if err := s.Replace(document.Range{Start: 0, End: 99}, "x"); err == nil {
		t.Error("expected error for out-of-range replace")
	} else if !errors.Is(err, document.ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestSetTextUndo(t *testing.T) {
	s := New("draft one")

	if err := s.SetText("draft two"); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "draft two" {
		t.Fatalf("expected %q, got %q", "draft two", s.Text())
	}

	if ok, err := s.Undo(); err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if s.Text() != "draft one" {
		t.Errorf("expected %q, got %q", "draft one", s.Text())
	}
}

func TestRedo(t *testing.T) {
	s := New("Hello")
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(5)})
	if err := s.InsertAtCursors("!"); err != nil {
		t.Fatal(err)
	}

	if ok, _ := s.Undo(); !ok {
		t.Fatal("expected undo")
	}
	ok, err := s.Redo()
	if err != nil || !ok {
		t.Fatalf("redo: ok=%v err=%v", ok, err)
	}
	if s.Text() != "Hello!" {
		t.Errorf("expected %q, got %q", "Hello!", s.Text())
	}
	if s.Cursors().Primary().Position() != 6 {
		t.Errorf("redo restores the after-cursors, got %d", s.Cursors().Primary().Position())
	}

	if ok, _ := s.Redo(); ok {
		t.Error("nothing left to redo")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	s := New("")
	if err := s.InsertAtCursors("a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Undo(); !ok {
		t.Fatal("expected undo")
	}
	if err := s.InsertAtCursors("b"); err != nil {
		t.Fatal(err)
	}

	if ok, _ := s.Redo(); ok {
		t.Error("a fresh edit clears the redo stack")
	}
}

func TestTransaction(t *testing.T) {
	s := New("one two three")

	err := s.Transaction("swap words", func(s *Session) error {
		if err := s.Replace(document.Range{Start: 0, End: 3}, "THREE"); err != nil {
			return err
		}
		return s.Replace(document.Range{Start: 10, End: 15}, "one")
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Text() != "THREE two one" {
		t.Fatalf("expected %q, got %q", "THREE two one", s.Text())
	}
	if s.History().UndoCount() != 1 {
		t.Fatalf("transaction commits one group, got %d", s.History().UndoCount())
	}

	if ok, _ := s.Undo(); !ok {
		t.Fatal("expected undo")
	}
	if s.Text() != "one two three" {
		t.Errorf("one undo reverses the transaction, got %q", s.Text())
	}
}

func TestTransactionErrorCancels(t *testing.T) {
	s := New("Hello")
	boom := errors.New("boom")

	err := s.Transaction("fail", func(s *Session) error {
		if err := s.InsertAtCursors("x"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	// The edit stays applied; only its undo record is discarded.
	if s.Text() != "xHello" {
		t.Errorf("expected %q, got %q", "xHello", s.Text())
	}
	if s.History().CanUndo() {
		t.Error("cancelled transaction leaves no undo record")
	}
	if s.History().IsGrouping() {
		t.Error("cancelled transaction closes grouping state")
	}
}

func TestChangeNotificationSources(t *testing.T) {
	var sources []string
	s := New("", WithChangeListener(func(ch document.Change) {
		sources = append(sources, ch.Source)
	}))

	if err := s.InsertAtCursors("a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Undo(); !ok {
		t.Fatal("expected undo")
	}

	want := []string{SourceUser, SourceHistory}
	if diff := cmp.Diff(want, sources); diff != "" {
		t.Errorf("sources (-want +got):\n%s", diff)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := New("", WithHistoryLimit(1))

	if err := s.InsertAtCursors("a"); err != nil {
		t.Fatal(err)
	}
	// Break the typing run so a second group is pushed.
	s.Cursors().SetAll([]cursor.Cursor{cursor.At(0)})
	if err := s.InsertAtCursors("b"); err != nil {
		t.Fatal(err)
	}

	if s.History().UndoCount() != 1 {
		t.Errorf("expected trimmed history, got %d", s.History().UndoCount())
	}
}
