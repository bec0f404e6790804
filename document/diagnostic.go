package document

import (
	"fmt"

	"github.com/tidwall/sjson"
)

const previewRunes = 16

// PieceInfo is a read-only view of one piece for introspection.
type PieceInfo struct {
	Index   int
	Source  string // "original" or "added"
	Start   int    // byte offset into the backing buffer
	ByteLen int
	RuneLen int
	Preview string
}

// DiagnosticInfo is a read-only snapshot of the piece table, used to
// inspect internal fragmentation. It is not an editing surface.
type DiagnosticInfo struct {
	Pieces       []PieceInfo
	OriginalSize int
	AddedSize    int
	Length       int
	ByteCount    int
	Version      uint64
}

// Diagnostics returns a snapshot of the current piece list and buffer
// sizes.
func (d *Document) Diagnostics() DiagnosticInfo {
	info := DiagnosticInfo{
		Pieces:       make([]PieceInfo, len(d.pieces)),
		OriginalSize: len(d.original),
		AddedSize:    len(d.added),
		Length:       int(d.length),
		ByteCount:    d.byteLen,
		Version:      d.version,
	}
	for i, p := range d.pieces {
		info.Pieces[i] = PieceInfo{
			Index:   i,
			Source:  p.src.String(),
			Start:   p.off,
			ByteLen: p.byteLen,
			RuneLen: p.runeLen,
			Preview: preview(decodeBytes(d.bytesOf(p))),
		}
	}
	return info
}

// preview truncates s to a short prefix for diagnostics output.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + "..."
}

// JSON renders the snapshot as a JSON document.
func (di DiagnosticInfo) JSON() string {
	js := "{}"
	js, _ = sjson.Set(js, "version", di.Version)
	js, _ = sjson.Set(js, "length", di.Length)
	js, _ = sjson.Set(js, "byteCount", di.ByteCount)
	js, _ = sjson.Set(js, "originalSize", di.OriginalSize)
	js, _ = sjson.Set(js, "addedSize", di.AddedSize)
	js, _ = sjson.Set(js, "pieces", []any{})
	for i, p := range di.Pieces {
		base := fmt.Sprintf("pieces.%d.", i)
		js, _ = sjson.Set(js, base+"index", p.Index)
		js, _ = sjson.Set(js, base+"source", p.Source)
		js, _ = sjson.Set(js, base+"start", p.Start)
		js, _ = sjson.Set(js, base+"byteLen", p.ByteLen)
		js, _ = sjson.Set(js, base+"runeLen", p.RuneLen)
		js, _ = sjson.Set(js, base+"preview", p.Preview)
	}
	return js
}
