package document

import (
	"sort"
	"unicode/utf8"
)

// The line index is a sorted slice of rune offsets, one per line start.
// lineStarts[0] is always 0; a newline at offset p opens a line at p+1,
// so a document ending in a newline has a final empty line.

// rebuildLineIndex recomputes the full index, total rune length, and
// total byte length from the piece list. Used after construction and
// after byte-level edits, which may shift rune accounting arbitrarily.
func (d *Document) rebuildLineIndex() {
	starts := []Offset{0}
	runes := 0
	bytes := 0
	for _, p := range d.pieces {
		b := d.bytesOf(p)
		bytes += p.byteLen
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			b = b[size:]
			runes++
			if r == '\n' {
				starts = append(starts, Offset(runes))
			}
		}
	}
	d.lineStarts = starts
	d.length = Offset(runes)
	d.byteLen = bytes
}

// updateLineIndex adjusts the line index for an edit at rune offset at
// that removed the text removed and inserted the text inserted. Only
// entries at or beyond the edit are touched; line starts before it are
// untouched, keeping the common small-edit case cheap.
func (d *Document) updateLineIndex(at Offset, removed, inserted string) {
	removedRunes := utf8.RuneCountInString(removed)
	insertedRunes := utf8.RuneCountInString(inserted)
	delta := insertedRunes - removedRunes

	// First entry strictly after the edit point. Line starts produced by
	// newlines in the removed text all fall in (at, at+removedRunes].
	i := sort.Search(len(d.lineStarts), func(j int) bool {
		return d.lineStarts[j] > at
	})
	j := i
	for j < len(d.lineStarts) && d.lineStarts[j] <= at+Offset(removedRunes) {
		j++
	}

	var fresh []Offset
	pos := 0
	for _, r := range inserted {
		pos++
		if r == '\n' {
			fresh = append(fresh, at+Offset(pos))
		}
	}

	rebuilt := make([]Offset, 0, i+len(fresh)+len(d.lineStarts)-j)
	rebuilt = append(rebuilt, d.lineStarts[:i]...)
	rebuilt = append(rebuilt, fresh...)
	for _, s := range d.lineStarts[j:] {
		rebuilt = append(rebuilt, s+Offset(delta))
	}
	d.lineStarts = rebuilt
}

// lineForOffset returns the 1-based line containing the given offset.
// The offset must already be validated.
func (d *Document) lineForOffset(o Offset) int {
	// Greatest line start <= o.
	i := sort.Search(len(d.lineStarts), func(j int) bool {
		return d.lineStarts[j] > o
	})
	return i
}
