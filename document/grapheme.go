package document

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Grapheme boundary queries, used by cursor motion and typing
// coalescence. A user-perceived character (grapheme cluster) may span
// several runes; boundaries never cross a newline because the cluster
// text is taken from a single line.

// NextGraphemeBoundary returns the offset just past the grapheme cluster
// starting at o. At the end of the document it returns o unchanged.
func (d *Document) NextGraphemeBoundary(o Offset) (Offset, error) {
	if o < 0 || o > d.length {
		return 0, fmt.Errorf("%w: %d of %d", ErrOffsetOutOfRange, o, d.length)
	}
	if o == d.length {
		return o, nil
	}

	line := d.lineForOffset(o)
	end := d.length
	if line < len(d.lineStarts) {
		end = d.lineStarts[line] // include the newline
	}
	text := d.textRange(Range{Start: o, End: end})

	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return o + Offset(utf8.RuneCountInString(cluster)), nil
}

// PrevGraphemeBoundary returns the start of the grapheme cluster ending
// at o. At the start of the document it returns o unchanged.
func (d *Document) PrevGraphemeBoundary(o Offset) (Offset, error) {
	if o < 0 || o > d.length {
		return 0, fmt.Errorf("%w: %d of %d", ErrOffsetOutOfRange, o, d.length)
	}
	if o == 0 {
		return 0, nil
	}

	line := d.lineForOffset(o - 1)
	start := d.lineStarts[line-1]
	text := d.textRange(Range{Start: start, End: o})

	// Walk clusters from the line start; the last full step lands on o,
	// and its starting offset is the previous boundary.
	pos := start
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		next := pos + Offset(utf8.RuneCountInString(cluster))
		if next >= o {
			return pos, nil
		}
		pos = next
	}
	return pos, nil
}
