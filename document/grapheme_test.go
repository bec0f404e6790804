package document

import "testing"

func TestNextGraphemeBoundary(t *testing.T) {
	// "a" + combining acute + "b": clusters are [a◌́] [b].
	d := New("áb")

	cases := []struct {
		from, want Offset
	}{
		{0, 2}, // past the combined cluster
		{2, 3},
		{3, 3}, // end of document
	}
	for _, c := range cases {
		got, err := d.NextGraphemeBoundary(c.from)
		if err != nil {
			t.Fatalf("from %d: %v", c.from, err)
		}
		if got != c.want {
			t.Errorf("from %d: expected %d, got %d", c.from, c.want, got)
		}
	}
}

func TestPrevGraphemeBoundary(t *testing.T) {
	d := New("áb")

	cases := []struct {
		from, want Offset
	}{
		{3, 2},
		{2, 0}, // skips back over the combined cluster
		{0, 0},
	}
	for _, c := range cases {
		got, err := d.PrevGraphemeBoundary(c.from)
		if err != nil {
			t.Fatalf("from %d: %v", c.from, err)
		}
		if got != c.want {
			t.Errorf("from %d: expected %d, got %d", c.from, c.want, got)
		}
	}
}

func TestGraphemeBoundariesStopAtNewline(t *testing.T) {
	d := New("a\nb")

	if got, _ := d.NextGraphemeBoundary(1); got != 2 {
		t.Errorf("newline is its own cluster, got %d", got)
	}
	if got, _ := d.PrevGraphemeBoundary(2); got != 1 {
		t.Errorf("expected boundary before newline, got %d", got)
	}
}

func TestGraphemeBoundaryEmoji(t *testing.T) {
	// Flag emoji: two regional indicator runes forming one cluster.
	d := New("\U0001F1EB\U0001F1F7x")

	if got, _ := d.NextGraphemeBoundary(0); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got, _ := d.PrevGraphemeBoundary(2); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
