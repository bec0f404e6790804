package document

import (
	"errors"
	"testing"
)

func TestNewOffsetRejectsNegative(t *testing.T) {
	if _, err := NewOffset(-1); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	o, err := NewOffset(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o != 5 {
		t.Errorf("expected offset 5, got %d", o)
	}
}

func TestOffsetAdvance(t *testing.T) {
	o := Offset(3)

	fwd, err := o.Advance(4)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if fwd != 7 {
		t.Errorf("expected 7, got %d", fwd)
	}

	back, err := o.Advance(-3)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if back != 0 {
		t.Errorf("expected 0, got %d", back)
	}

	if _, err := o.Advance(-4); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestOffsetDiff(t *testing.T) {
	if d := Offset(3).Diff(Offset(10)); d != -7 {
		t.Errorf("expected -7, got %d", d)
	}
	if d := Offset(10).Diff(Offset(3)); d != 7 {
		t.Errorf("expected 7, got %d", d)
	}
}

func TestNewPositionRejectsOutOfRange(t *testing.T) {
	if _, err := NewPosition(0, 1); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("expected ErrPositionOutOfRange for line 0, got %v", err)
	}
	if _, err := NewPosition(1, 0); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("expected ErrPositionOutOfRange for column 0, got %v", err)
	}
	if _, err := NewPosition(1, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPositionOrdering(t *testing.T) {
	a := Position{Line: 1, Column: 9}
	b := Position{Line: 2, Column: 1}
	c := Position{Line: 2, Column: 5}

	if !a.Before(b) {
		t.Error("line ordering should dominate column")
	}
	if !b.Before(c) {
		t.Error("same line should order by column")
	}
	if !c.After(a) {
		t.Error("expected c after a")
	}
	if b.Compare(b) != 0 {
		t.Error("expected equal positions to compare 0")
	}
}

func TestNewRangeRejectsInverted(t *testing.T) {
	if _, err := NewRange(5, 3); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}

	r, err := NewRange(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("expected length 2, got %d", r.Len())
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 2, End: 5}

	if r.Contains(1) {
		t.Error("offset before start should not be contained")
	}
	if !r.Contains(2) {
		t.Error("start should be contained")
	}
	if !r.Contains(4) {
		t.Error("interior offset should be contained")
	}
	if r.Contains(5) {
		t.Error("end is exclusive")
	}

	empty := Range{Start: 3, End: 3}
	if empty.Contains(3) {
		t.Error("empty range contains nothing")
	}
}

func TestRangeOverlaps(t *testing.T) {
	a := Range{Start: 0, End: 5}
	b := Range{Start: 3, End: 8}
	c := Range{Start: 5, End: 9}
	empty := Range{Start: 2, End: 2}

	if !a.Overlaps(b) {
		t.Error("expected overlap")
	}
	if !b.Overlaps(a) {
		t.Error("overlap should be symmetric")
	}
	if a.Overlaps(c) {
		t.Error("adjacent ranges do not overlap")
	}
	if a.Overlaps(empty) {
		t.Error("empty ranges never overlap")
	}
}

func TestRangeUnion(t *testing.T) {
	u := Range{Start: 1, End: 4}.Union(Range{Start: 3, End: 9})
	if u.Start != 1 || u.End != 9 {
		t.Errorf("expected [1:9), got %s", u)
	}
}
