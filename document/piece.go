package document

import (
	"strings"
	"unicode/utf8"
)

// bufKind identifies which backing buffer a piece references.
type bufKind uint8

const (
	bufOriginal bufKind = iota // the immutable construction-time buffer
	bufAdded                   // the append-only buffer for inserted text
)

// String returns the backing buffer name.
func (b bufKind) String() string {
	if b == bufAdded {
		return "added"
	}
	return "original"
}

// piece references a span of one backing buffer. Pieces never own text;
// they are plain index/length pairs so splitting and splicing move no
// document bytes. Both the byte and rune lengths are kept because the
// document exposes rune offsets while the buffers store bytes.
type piece struct {
	src     bufKind
	off     int // byte offset into the backing buffer
	byteLen int
	runeLen int
}

// bytesOf returns the raw bytes a piece references.
func (d *Document) bytesOf(p piece) []byte {
	if p.src == bufAdded {
		return d.added[p.off : p.off+p.byteLen]
	}
	return d.original[p.off : p.off+p.byteLen]
}

// newPiece builds a piece over buf[off:off+byteLen], counting its runes.
func (d *Document) newPiece(src bufKind, off, byteLen int) piece {
	p := piece{src: src, off: off, byteLen: byteLen}
	p.runeLen = utf8.RuneCount(d.bytesOf(p))
	return p
}

// byteIndexOfRune returns the byte index of the nth rune in b.
// Each invalid byte counts as one rune, matching utf8.RuneCount.
func byteIndexOfRune(b []byte, n int) int {
	idx := 0
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRune(b[idx:])
		idx += size
	}
	return idx
}

// decodeBytes decodes b as UTF-8 text. Invalid bytes become one
// replacement character each, so the rune length of the result always
// equals utf8.RuneCount(b).
func decodeBytes(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// prefixPiece returns the first n runes of p as a new piece.
func (d *Document) prefixPiece(p piece, n int) piece {
	split := byteIndexOfRune(d.bytesOf(p), n)
	return piece{src: p.src, off: p.off, byteLen: split, runeLen: n}
}

// suffixPiece returns p with its first n runes removed.
func (d *Document) suffixPiece(p piece, n int) piece {
	split := byteIndexOfRune(d.bytesOf(p), n)
	return piece{
		src:     p.src,
		off:     p.off + split,
		byteLen: p.byteLen - split,
		runeLen: p.runeLen - n,
	}
}

// locate finds the piece containing the given rune offset. It returns the
// piece index and the rune offset at which that piece starts. When at
// equals the document length it returns len(pieces).
func (d *Document) locate(at Offset) (idx int, pieceStart Offset) {
	acc := Offset(0)
	for i, p := range d.pieces {
		if at < acc+Offset(p.runeLen) {
			return i, acc
		}
		acc += Offset(p.runeLen)
	}
	return len(d.pieces), acc
}

// insertText splices text into the piece list at the given rune offset.
// The text is appended to the added buffer; if the offset falls on a
// piece boundary the new piece is spliced between neighbors, otherwise
// the containing piece is split in two around it.
func (d *Document) insertText(at Offset, text string) {
	if text == "" {
		return
	}

	off := len(d.added)
	d.added = append(d.added, text...)
	np := d.newPiece(bufAdded, off, len(text))

	idx, pieceStart := d.locate(at)

	out := make([]piece, 0, len(d.pieces)+2)
	if at == pieceStart {
		out = append(out, d.pieces[:idx]...)
		out = append(out, np)
		out = append(out, d.pieces[idx:]...)
	} else {
		runesIn := int(at - pieceStart)
		left := d.prefixPiece(d.pieces[idx], runesIn)
		right := d.suffixPiece(d.pieces[idx], runesIn)
		out = append(out, d.pieces[:idx]...)
		out = append(out, left, np, right)
		out = append(out, d.pieces[idx+1:]...)
	}
	d.pieces = out

	d.length += Offset(np.runeLen)
	d.byteLen += np.byteLen
	d.updateLineIndex(at, "", text)
}

// deleteText drops the given rune range from the piece list. Pieces fully
// inside the range are removed; pieces partially overlapping are truncated
// to their surviving prefix or suffix. removed is the already-materialized
// text of the range, used to maintain the line index.
func (d *Document) deleteText(r Range, removed string) {
	if r.IsEmpty() {
		return
	}

	out := make([]piece, 0, len(d.pieces)+1)
	acc := Offset(0)
	removedBytes := 0
	for _, p := range d.pieces {
		pStart := acc
		pEnd := acc + Offset(p.runeLen)
		acc = pEnd

		if pEnd <= r.Start || pStart >= r.End {
			out = append(out, p)
			continue
		}

		keepPrefix := 0
		if r.Start > pStart {
			keepPrefix = int(r.Start - pStart)
		}
		keepSuffix := 0
		if pEnd > r.End {
			keepSuffix = int(pEnd - r.End)
		}

		cut := p.byteLen
		if keepPrefix > 0 {
			left := d.prefixPiece(p, keepPrefix)
			out = append(out, left)
			cut -= left.byteLen
		}
		if keepSuffix > 0 {
			right := d.suffixPiece(p, p.runeLen-keepSuffix)
			out = append(out, right)
			cut -= right.byteLen
		}
		removedBytes += cut
	}
	d.pieces = out

	d.length -= Offset(r.Len())
	d.byteLen -= removedBytes
	d.updateLineIndex(r.Start, removed, "")
}

// textRange materializes the text of a rune range by walking the piece
// list. Each piece decodes independently; bytes are authoritative and a
// piece's invalid bytes render as replacement characters.
func (d *Document) textRange(r Range) string {
	if r.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.Grow(r.Len())
	acc := Offset(0)
	for _, p := range d.pieces {
		pStart := acc
		pEnd := acc + Offset(p.runeLen)
		acc = pEnd

		if pEnd <= r.Start {
			continue
		}
		if pStart >= r.End {
			break
		}

		from := 0
		if r.Start > pStart {
			from = int(r.Start - pStart)
		}
		to := p.runeLen
		if r.End < pEnd {
			to = int(r.End - pStart)
		}

		b := d.bytesOf(p)
		lo := byteIndexOfRune(b, from)
		hi := lo + byteIndexOfRune(b[lo:], to-from)
		sb.WriteString(decodeBytes(b[lo:hi]))
	}
	return sb.String()
}

// locateByte finds the piece containing the given byte offset, returning
// the piece index and the byte offset at which that piece starts.
func (d *Document) locateByte(at int) (idx int, pieceStart int) {
	acc := 0
	for i, p := range d.pieces {
		if at < acc+p.byteLen {
			return i, acc
		}
		acc += p.byteLen
	}
	return len(d.pieces), acc
}

// byteRange materializes raw bytes of the byte span [start, end).
func (d *Document) byteRange(start, end int) []byte {
	out := make([]byte, 0, end-start)
	acc := 0
	for _, p := range d.pieces {
		pStart := acc
		pEnd := acc + p.byteLen
		acc = pEnd

		if pEnd <= start {
			continue
		}
		if pStart >= end {
			break
		}

		lo := 0
		if start > pStart {
			lo = start - pStart
		}
		hi := p.byteLen
		if end < pEnd {
			hi = end - pStart
		}
		out = append(out, d.bytesOf(p)[lo:hi]...)
	}
	return out
}

// insertBytes splices raw bytes into the piece list at a byte offset.
// A split may land mid-rune; rune lengths of the halves are recounted
// from their bytes, so the text view stays consistent with per-piece
// decoding.
func (d *Document) insertBytes(at int, data []byte) {
	if len(data) == 0 {
		return
	}

	off := len(d.added)
	d.added = append(d.added, data...)
	np := d.newPiece(bufAdded, off, len(data))

	idx, pieceStart := d.locateByte(at)

	out := make([]piece, 0, len(d.pieces)+2)
	if at == pieceStart {
		out = append(out, d.pieces[:idx]...)
		out = append(out, np)
		out = append(out, d.pieces[idx:]...)
	} else {
		p := d.pieces[idx]
		split := at - pieceStart
		left := d.newPiece(p.src, p.off, split)
		right := d.newPiece(p.src, p.off+split, p.byteLen-split)
		out = append(out, d.pieces[:idx]...)
		out = append(out, left, np, right)
		out = append(out, d.pieces[idx+1:]...)
	}
	d.pieces = out
}

// seqLen returns the declared length of the UTF-8 sequence led by b, or
// 0 when b cannot lead a multi-byte sequence.
func seqLen(b byte) int {
	switch {
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	case b < 0xF8:
		return 4
	default:
		return 0
	}
}

// isCont reports whether b is a UTF-8 continuation byte.
func isCont(b byte) bool {
	return b&0xC0 == 0x80
}

// partialTail reports an incomplete multi-byte sequence at the end of b:
// the number of its bytes present and the total length it declares.
// Returns (0, 0) when b ends on a sequence boundary or in bytes that can
// never complete into one rune.
func partialTail(b []byte) (have, want int) {
	for back := 1; back <= 3 && back <= len(b); back++ {
		lead := b[len(b)-back]
		if isCont(lead) {
			continue
		}
		if n := seqLen(lead); n > back {
			for _, c := range b[len(b)-back+1:] {
				if !isCont(c) {
					return 0, 0
				}
			}
			return back, n
		}
		return 0, 0
	}
	return 0, 0
}

// mergeSplitRunes repairs piece junctions after a byte-level edit. A
// valid multi-byte rune whose bytes ended up in adjacent pieces is
// rejoined into a single added-buffer piece, so per-piece decoding
// agrees with decoding the logical byte stream. Junctions that do not
// assemble into a valid rune are left alone: invalid bytes decode to one
// replacement character each on either reading.
func (d *Document) mergeSplitRunes() {
	for i := 0; i < len(d.pieces)-1; i++ {
		b := d.bytesOf(d.pieces[i])
		have, want := partialTail(b)
		if have == 0 {
			continue
		}

		assembled := make([]byte, 0, utf8.UTFMax)
		assembled = append(assembled, b[len(b)-have:]...)
		var taken []int // continuation bytes consumed per following piece
		for j := i + 1; j < len(d.pieces) && len(assembled) < want; j++ {
			nb := d.bytesOf(d.pieces[j])
			k := 0
			for k < len(nb) && len(assembled) < want && isCont(nb[k]) {
				assembled = append(assembled, nb[k])
				k++
			}
			taken = append(taken, k)
			if k < len(nb) {
				break
			}
		}
		if len(assembled) != want {
			continue
		}
		if _, size := utf8.DecodeRune(assembled); size != want {
			continue
		}

		off := len(d.added)
		d.added = append(d.added, assembled...)
		joined := d.newPiece(bufAdded, off, want)

		out := make([]piece, 0, len(d.pieces))
		out = append(out, d.pieces[:i]...)
		left := d.pieces[i]
		if left.byteLen > have {
			out = append(out, d.newPiece(left.src, left.off, left.byteLen-have))
		}
		at := len(out)
		out = append(out, joined)
		for n, k := range taken {
			p := d.pieces[i+1+n]
			if k < p.byteLen {
				out = append(out, d.newPiece(p.src, p.off+k, p.byteLen-k))
			}
		}
		out = append(out, d.pieces[i+1+len(taken):]...)
		d.pieces = out

		// The joined piece ends on a rune boundary; resume at the
		// junction after it.
		i = at
	}
}

// deleteBytes drops the byte span [start, end) from the piece list.
func (d *Document) deleteBytes(start, end int) {
	if start == end {
		return
	}

	out := make([]piece, 0, len(d.pieces)+1)
	acc := 0
	for _, p := range d.pieces {
		pStart := acc
		pEnd := acc + p.byteLen
		acc = pEnd

		if pEnd <= start || pStart >= end {
			out = append(out, p)
			continue
		}

		if start > pStart {
			out = append(out, d.newPiece(p.src, p.off, start-pStart))
		}
		if end < pEnd {
			out = append(out, d.newPiece(p.src, p.off+(end-pStart), pEnd-end))
		}
	}
	d.pieces = out
}
