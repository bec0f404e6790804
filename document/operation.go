package document

import (
	"fmt"
	"unicode/utf8"
)

// OpKind identifies an operation variant.
// The set of variants is closed so Apply and Invert can switch
// exhaustively without runtime type checks.
type OpKind uint8

const (
	OpInsert  OpKind = iota // Text inserted at Range.Start (Range is empty)
	OpDelete                // Range removed
	OpReplace               // Range replaced with Text
)

// String returns the string representation of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Operation is one atomic text mutation.
// An insert carries an empty Range at the insertion offset; delete and
// replace carry the span they remove.
type Operation struct {
	Kind  OpKind
	Range Range
	Text  string
}

// Insert creates an operation that inserts text at the given offset.
func Insert(at Offset, text string) Operation {
	return Operation{
		Kind:  OpInsert,
		Range: Range{Start: at, End: at},
		Text:  text,
	}
}

// Delete creates an operation that removes the given range.
func Delete(r Range) Operation {
	return Operation{Kind: OpDelete, Range: r}
}

// Replace creates an operation that replaces the given range with text.
func Replace(r Range, text string) Operation {
	return Operation{Kind: OpReplace, Range: r, Text: text}
}

// TextLen returns the rune length of the operation's new text.
func (op Operation) TextLen() int {
	return utf8.RuneCountInString(op.Text)
}

// NewRange returns the span the operation's new text occupies after the
// operation has been applied. For a delete this is the empty range at the
// deletion point.
func (op Operation) NewRange() Range {
	if op.Kind == OpDelete {
		return Range{Start: op.Range.Start, End: op.Range.Start}
	}
	return Range{
		Start: op.Range.Start,
		End:   op.Range.Start + Offset(op.TextLen()),
	}
}

// Invert returns the operation that undoes this one. prior is the text
// that existed at the affected location before the edit was applied; the
// operation itself does not know the document's previous content, so the
// document (or caller) supplies it.
func (op Operation) Invert(prior string) Operation {
	switch op.Kind {
	case OpInsert:
		return Delete(op.NewRange())
	case OpDelete:
		return Insert(op.Range.Start, prior)
	case OpReplace:
		return Replace(op.NewRange(), prior)
	default:
		return op
	}
}

// IsNoop returns true if the operation changes nothing.
func (op Operation) IsNoop() bool {
	switch op.Kind {
	case OpInsert:
		return op.Text == ""
	case OpDelete:
		return op.Range.IsEmpty()
	case OpReplace:
		return op.Range.IsEmpty() && op.Text == ""
	default:
		return true
	}
}

// Delta returns the change in document rune length caused by the operation.
func (op Operation) Delta() int {
	switch op.Kind {
	case OpInsert:
		return op.TextLen()
	case OpDelete:
		return -op.Range.Len()
	case OpReplace:
		return op.TextLen() - op.Range.Len()
	default:
		return 0
	}
}

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("Insert(%d, %q)", op.Range.Start, op.Text)
	case OpDelete:
		return fmt.Sprintf("Delete%s", op.Range)
	case OpReplace:
		return fmt.Sprintf("Replace%s with %q", op.Range, op.Text)
	default:
		return "Unknown"
	}
}

// ByteOperation is the byte-level counterpart of Operation.
// Start and End are byte offsets into the raw document bytes.
type ByteOperation struct {
	Kind  OpKind
	Start int
	End   int
	Data  []byte
}

// ByteInsert creates an operation that inserts raw bytes at the given
// byte offset.
func ByteInsert(at int, data []byte) ByteOperation {
	return ByteOperation{Kind: OpInsert, Start: at, End: at, Data: data}
}

// ByteDelete creates an operation that removes the byte range [start, end).
func ByteDelete(start, end int) ByteOperation {
	return ByteOperation{Kind: OpDelete, Start: start, End: end}
}

// ByteReplace creates an operation that replaces the byte range
// [start, end) with data.
func ByteReplace(start, end int, data []byte) ByteOperation {
	return ByteOperation{Kind: OpReplace, Start: start, End: end, Data: data}
}

// NewEnd returns the byte offset just past the operation's new data after
// the operation has been applied.
func (op ByteOperation) NewEnd() int {
	return op.Start + len(op.Data)
}

// Invert returns the byte operation that undoes this one, given the raw
// bytes that occupied the affected span before the edit.
func (op ByteOperation) Invert(prior []byte) ByteOperation {
	switch op.Kind {
	case OpInsert:
		return ByteDelete(op.Start, op.NewEnd())
	case OpDelete:
		return ByteInsert(op.Start, prior)
	case OpReplace:
		return ByteReplace(op.Start, op.NewEnd(), prior)
	default:
		return op
	}
}

// String returns a human-readable representation of the byte operation.
func (op ByteOperation) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("ByteInsert(%d, %d bytes)", op.Start, len(op.Data))
	case OpDelete:
		return fmt.Sprintf("ByteDelete[%d:%d)", op.Start, op.End)
	case OpReplace:
		return fmt.Sprintf("ByteReplace[%d:%d) with %d bytes", op.Start, op.End, len(op.Data))
	default:
		return "Unknown"
	}
}
