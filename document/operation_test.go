package document

import (
	"bytes"
	"testing"
)

func TestInsertInvert(t *testing.T) {
	op := Insert(5, " world")
	inv := op.Invert("")

	if inv.Kind != OpDelete {
		t.Fatalf("expected delete, got %s", inv.Kind)
	}
	if inv.Range.Start != 5 || inv.Range.End != 11 {
		t.Errorf("expected [5:11), got %s", inv.Range)
	}
}

func TestInsertInvertCountsRunes(t *testing.T) {
	op := Insert(0, "héllo")
	inv := op.Invert("")

	if inv.Range.End != 5 {
		t.Errorf("inverse range should span 5 runes, got %s", inv.Range)
	}
}

func TestDeleteInvert(t *testing.T) {
	op := Delete(Range{Start: 5, End: 11})
	inv := op.Invert(" world")

	if inv.Kind != OpInsert {
		t.Fatalf("expected insert, got %s", inv.Kind)
	}
	if inv.Range.Start != 5 {
		t.Errorf("expected offset 5, got %d", inv.Range.Start)
	}
	if inv.Text != " world" {
		t.Errorf("expected deleted text restored, got %q", inv.Text)
	}
}

func TestReplaceInvert(t *testing.T) {
	op := Replace(Range{Start: 2, End: 7}, "new")
	inv := op.Invert("older")

	if inv.Kind != OpReplace {
		t.Fatalf("expected replace, got %s", inv.Kind)
	}
	if inv.Range.Start != 2 || inv.Range.End != 5 {
		t.Errorf("inverse should cover the new text span [2:5), got %s", inv.Range)
	}
	if inv.Text != "older" {
		t.Errorf("expected replaced text restored, got %q", inv.Text)
	}
}

func TestOperationDelta(t *testing.T) {
	if d := Insert(0, "abc").Delta(); d != 3 {
		t.Errorf("expected 3, got %d", d)
	}
	if d := Delete(Range{Start: 1, End: 4}).Delta(); d != -3 {
		t.Errorf("expected -3, got %d", d)
	}
	if d := Replace(Range{Start: 0, End: 2}, "xyzw").Delta(); d != 2 {
		t.Errorf("expected 2, got %d", d)
	}
}

func TestByteOperationInvert(t *testing.T) {
	ins := ByteInsert(3, []byte{0xFF, 0x00})
	inv := ins.Invert(nil)
	if inv.Kind != OpDelete || inv.Start != 3 || inv.End != 5 {
		t.Errorf("expected ByteDelete[3:5), got %s", inv)
	}

	del := ByteDelete(3, 5)
	inv = del.Invert([]byte{0xFF, 0x00})
	if inv.Kind != OpInsert || inv.Start != 3 || !bytes.Equal(inv.Data, []byte{0xFF, 0x00}) {
		t.Errorf("expected ByteInsert of prior bytes, got %s", inv)
	}

	rep := ByteReplace(0, 4, []byte{0x01})
	inv = rep.Invert([]byte{0x0A, 0x0B, 0x0C, 0x0D})
	if inv.Kind != OpReplace || inv.Start != 0 || inv.End != 1 {
		t.Errorf("expected ByteReplace[0:1), got %s", inv)
	}
	if !bytes.Equal(inv.Data, []byte{0x0A, 0x0B, 0x0C, 0x0D}) {
		t.Errorf("expected prior bytes restored, got %v", inv.Data)
	}
}
