package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// checkLineIndex verifies the incrementally maintained line starts
// against a full recomputation from the document text.
func checkLineIndex(t *testing.T, d *Document) {
	t.Helper()
	want := []Offset{0}
	for i, r := range []rune(d.Text()) {
		if r == '\n' {
			want = append(want, Offset(i+1))
		}
	}
	if diff := cmp.Diff(want, d.lineStarts); diff != "" {
		t.Errorf("line starts mismatch (-want +got):\n%s", diff)
	}
}

func TestLineIndexAfterInserts(t *testing.T) {
	d := New("Hello\nworld")
	checkLineIndex(t, d)

	apply1(t, d, Insert(5, "\nthere"))
	checkLineIndex(t, d)

	apply1(t, d, Insert(0, "\n\n"))
	checkLineIndex(t, d)

	apply1(t, d, Insert(d.Len(), "tail\n"))
	checkLineIndex(t, d)
}

func TestLineIndexAfterDeletes(t *testing.T) {
	d := New("one\ntwo\nthree\nfour")

	// Drop "\ntwo" entirely.
	apply1(t, d, Delete(Range{Start: 3, End: 7}))
	checkLineIndex(t, d)
	if d.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", d.LineCount())
	}

	// Delete across a line boundary.
	apply1(t, d, Delete(Range{Start: 2, End: 5}))
	checkLineIndex(t, d)
}

func TestLineIndexAfterReplace(t *testing.T) {
	d := New("aaa\nbbb\nccc")

	apply1(t, d, Replace(Range{Start: 2, End: 9}, "X\nY\nZ"))
	checkLineIndex(t, d)
	if d.Text() != "aaX\nY\nZcc" {
		t.Errorf("expected %q, got %q", "aaX\nY\nZcc", d.Text())
	}
}

func TestLineIndexMixedEdits(t *testing.T) {
	d := New(strings.Repeat("line\n", 20))

	edits := []Operation{
		Insert(7, "a\nb"),
		Delete(Range{Start: 30, End: 45}),
		Replace(Range{Start: 0, End: 10}, "\n\n\n"),
		Insert(50, "x"),
	}
	for _, op := range edits {
		apply1(t, d, op)
		checkLineIndex(t, d)
	}
}
