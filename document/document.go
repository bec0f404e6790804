package document

import (
	"fmt"
)

// Change describes one applied transaction. It is delivered synchronously
// to every registered listener, exactly once per Apply or ApplyBytes call,
// before the call returns.
type Change struct {
	PreviousVersion uint64
	NewVersion      uint64

	// Source is the optional provenance tag passed to Apply, e.g. to
	// distinguish user input from programmatic edits. Empty if untagged.
	Source string
}

// EditResult describes a completed Apply transaction.
type EditResult struct {
	PreviousVersion uint64
	NewVersion      uint64

	// Applied holds the operations in the order they took effect.
	Applied []Operation

	// Inverses undo Applied. They are in forward application order, i.e.
	// Inverses[i] undoes Applied[i] against the state Applied[i] produced.
	// Reverse the slice before replaying it as an undo.
	Inverses []Operation
}

// ByteEditResult describes a completed ApplyBytes transaction.
type ByteEditResult struct {
	PreviousVersion uint64
	NewVersion      uint64
	Applied         ByteOperation
	Inverse         ByteOperation
}

// Document stores text as a piece table: an ordered list of pieces, each
// referencing a span of either the immutable original buffer or the
// append-only added buffer. Small edits splice pieces instead of
// rewriting buffers.
//
// All offsets on the text surface are rune offsets; the byte surface
// (Bytes, ApplyBytes) uses raw byte offsets over the same pieces.
//
// Document carries no internal locking. It is single-writer by contract:
// callers must serialize all mutating calls to one instance.
type Document struct {
	original []byte
	added    []byte
	pieces   []piece

	lineStarts []Offset
	length     Offset // total runes
	byteLen    int    // total bytes
	version    uint64

	listeners []func(Change)
}

// Option configures a Document.
type Option func(*Document)

// WithChangeListener registers a change listener at construction time.
// Equivalent to calling OnChange after New.
func WithChangeListener(fn func(Change)) Option {
	return func(d *Document) {
		d.listeners = append(d.listeners, fn)
	}
}

// New creates a document from text. The text becomes the original buffer,
// covered by a single piece.
func New(text string, opts ...Option) *Document {
	return NewFromBytes([]byte(text), opts...)
}

// NewFromBytes creates a document from raw bytes. The bytes are stored
// verbatim as the original buffer and decoded as UTF-8 for the text view;
// invalid sequences decode to replacement characters but the raw bytes
// are never altered.
func NewFromBytes(b []byte, opts ...Option) *Document {
	d := &Document{
		original: append([]byte(nil), b...),
	}
	if len(d.original) > 0 {
		d.pieces = []piece{d.newPiece(bufOriginal, 0, len(d.original))}
	}
	d.rebuildLineIndex()

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnChange registers a listener invoked synchronously once per applied
// transaction. Listeners observe the document in its final post-edit
// state.
func (d *Document) OnChange(fn func(Change)) {
	d.listeners = append(d.listeners, fn)
}

func (d *Document) notify(ch Change) {
	for _, fn := range d.listeners {
		fn(ch)
	}
}

// Read surface

// Len returns the document length in runes.
func (d *Document) Len() Offset {
	return d.length
}

// ByteCount returns the document length in bytes.
func (d *Document) ByteCount() int {
	return d.byteLen
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return d.byteLen == 0
}

// Version returns the current document version. It increases by exactly
// one per applied transaction.
func (d *Document) Version() uint64 {
	return d.version
}

// Text materializes the full document text.
func (d *Document) Text() string {
	return d.textRange(Range{Start: 0, End: d.length})
}

// TextRange materializes the text of a rune range.
func (d *Document) TextRange(r Range) (string, error) {
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	if r.End > d.length {
		return "", fmt.Errorf("%w: %s beyond length %d", ErrOffsetOutOfRange, r, d.length)
	}
	return d.textRange(r), nil
}

// Bytes returns a copy of the raw document bytes.
func (d *Document) Bytes() []byte {
	return d.byteRange(0, d.byteLen)
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// lineSpan returns the rune range of a 1-based line, excluding its
// trailing newline.
func (d *Document) lineSpan(line int) (Range, error) {
	if line < 1 || line > len(d.lineStarts) {
		return Range{}, fmt.Errorf("%w: %d of %d", ErrLineOutOfRange, line, len(d.lineStarts))
	}
	start := d.lineStarts[line-1]
	var end Offset
	if line < len(d.lineStarts) {
		end = d.lineStarts[line] - 1 // before the newline
	} else {
		end = d.length
	}
	return Range{Start: start, End: end}, nil
}

// LineText returns the text of a 1-based line, without its newline.
func (d *Document) LineText(line int) (string, error) {
	span, err := d.lineSpan(line)
	if err != nil {
		return "", err
	}
	return d.textRange(span), nil
}

// LineLength returns the rune length of a 1-based line, without its
// newline.
func (d *Document) LineLength(line int) (int, error) {
	span, err := d.lineSpan(line)
	if err != nil {
		return 0, err
	}
	return span.Len(), nil
}

// LineAt returns the 1-based line containing the given offset.
func (d *Document) LineAt(o Offset) (int, error) {
	if o < 0 || o > d.length {
		return 0, fmt.Errorf("%w: %d of %d", ErrOffsetOutOfRange, o, d.length)
	}
	return d.lineForOffset(o), nil
}

// OffsetToPosition converts a rune offset to a 1-based line/column
// position. Offset d.Len() is valid and maps to the insertion point after
// the last character.
func (d *Document) OffsetToPosition(o Offset) (Position, error) {
	if o < 0 || o > d.length {
		return Position{}, fmt.Errorf("%w: %d of %d", ErrOffsetOutOfRange, o, d.length)
	}
	line := d.lineForOffset(o)
	return Position{
		Line:   line,
		Column: int(o-d.lineStarts[line-1]) + 1,
	}, nil
}

// PositionToOffset converts a 1-based line/column position to a rune
// offset. Column may be one past the line's last character (the
// insertion point at end of line).
func (d *Document) PositionToOffset(p Position) (Offset, error) {
	if p.Line < 1 || p.Column < 1 {
		return 0, fmt.Errorf("%w: %s", ErrPositionOutOfRange, p)
	}
	span, err := d.lineSpan(p.Line)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrPositionOutOfRange, p)
	}
	if p.Column > span.Len()+1 {
		return 0, fmt.Errorf("%w: %s on line of %d runes", ErrPositionOutOfRange, p, span.Len())
	}
	return span.Start + Offset(p.Column-1), nil
}

// Mutation surface

// docState is a rollback point for a failed transaction.
type docState struct {
	pieces     []piece
	lineStarts []Offset
	addedLen   int
	length     Offset
	byteLen    int
}

func (d *Document) saveState() docState {
	return docState{
		pieces:     append([]piece(nil), d.pieces...),
		lineStarts: append([]Offset(nil), d.lineStarts...),
		addedLen:   len(d.added),
		length:     d.length,
		byteLen:    d.byteLen,
	}
}

func (d *Document) restoreState(s docState) {
	d.pieces = s.pieces
	d.lineStarts = s.lineStarts
	d.added = d.added[:s.addedLen]
	d.length = s.length
	d.byteLen = s.byteLen
}

// Apply applies one or more operations as a single atomic transaction.
// Operations take effect in order, each against the state its
// predecessors produced. On any failure the document is rolled back and
// the error reports the offending operation; otherwise the version is
// bumped exactly once and one change notification fires.
//
// The optional source tag is attached to the change notification; pass ""
// for untagged edits.
func (d *Document) Apply(ops []Operation, source string) (*EditResult, error) {
	if len(ops) == 0 {
		return nil, ErrEmptyTransaction
	}

	prev := d.version
	state := d.saveState()
	inverses := make([]Operation, 0, len(ops))
	for _, op := range ops {
		inv, err := d.applyOp(op)
		if err != nil {
			d.restoreState(state)
			return nil, fmt.Errorf("apply %s: %w", op, err)
		}
		inverses = append(inverses, inv)
	}

	d.version++
	d.notify(Change{PreviousVersion: prev, NewVersion: d.version, Source: source})

	return &EditResult{
		PreviousVersion: prev,
		NewVersion:      d.version,
		Applied:         append([]Operation(nil), ops...),
		Inverses:        inverses,
	}, nil
}

// applyOp validates and applies a single operation, returning its
// inverse. Validation happens before any piece-list mutation.
func (d *Document) applyOp(op Operation) (Operation, error) {
	switch op.Kind {
	case OpInsert:
		if op.Range.Start != op.Range.End {
			return Operation{}, fmt.Errorf("%w: insert range %s must be empty", ErrRangeInvalid, op.Range)
		}
		at := op.Range.Start
		if at < 0 || at > d.length {
			return Operation{}, fmt.Errorf("%w: %d of %d", ErrOffsetOutOfRange, at, d.length)
		}
		inv := op.Invert("")
		d.insertText(at, op.Text)
		return inv, nil

	case OpDelete:
		if !op.Range.IsValid() {
			return Operation{}, fmt.Errorf("%w: %s", ErrRangeInvalid, op.Range)
		}
		if op.Range.End > d.length {
			return Operation{}, fmt.Errorf("%w: %s of %d", ErrOffsetOutOfRange, op.Range, d.length)
		}
		prior := d.textRange(op.Range)
		d.deleteText(op.Range, prior)
		return op.Invert(prior), nil

	case OpReplace:
		if !op.Range.IsValid() {
			return Operation{}, fmt.Errorf("%w: %s", ErrRangeInvalid, op.Range)
		}
		if op.Range.End > d.length {
			return Operation{}, fmt.Errorf("%w: %s of %d", ErrOffsetOutOfRange, op.Range, d.length)
		}
		prior := d.textRange(op.Range)
		d.deleteText(op.Range, prior)
		d.insertText(op.Range.Start, op.Text)
		return op.Invert(prior), nil

	default:
		return Operation{}, fmt.Errorf("%w: unknown operation kind %d", ErrRangeInvalid, op.Kind)
	}
}

// ApplyBytes applies a single byte-level operation. The raw bytes are
// edited verbatim, the version is bumped, one change notification fires,
// and the text view reflects the edited bytes (re-decoded, with invalid
// sequences rendering as replacement characters).
func (d *Document) ApplyBytes(op ByteOperation, source string) (*ByteEditResult, error) {
	if op.Start < 0 || op.End < op.Start {
		return nil, fmt.Errorf("%w: bytes [%d:%d)", ErrRangeInvalid, op.Start, op.End)
	}
	if op.End > d.byteLen {
		return nil, fmt.Errorf("%w: bytes [%d:%d) of %d", ErrOffsetOutOfRange, op.Start, op.End, d.byteLen)
	}

	prior := d.byteRange(op.Start, op.End)
	inv := op.Invert(prior)

	switch op.Kind {
	case OpInsert:
		d.insertBytes(op.Start, op.Data)
	case OpDelete:
		d.deleteBytes(op.Start, op.End)
	case OpReplace:
		d.deleteBytes(op.Start, op.End)
		d.insertBytes(op.Start, op.Data)
	default:
		return nil, fmt.Errorf("%w: unknown operation kind %d", ErrRangeInvalid, op.Kind)
	}

	// Byte edits can split runes. Pieces whose junction completes a
	// valid rune are rejoined first, then rune accounting and the line
	// index are recomputed rather than patched.
	d.mergeSplitRunes()
	d.rebuildLineIndex()

	prev := d.version
	d.version++
	d.notify(Change{PreviousVersion: prev, NewVersion: d.version, Source: source})

	return &ByteEditResult{
		PreviousVersion: prev,
		NewVersion:      d.version,
		Applied:         op,
		Inverse:         inv,
	}, nil
}
