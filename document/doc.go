// Package document provides a piece-table text buffer with dual rune and
// byte views, designed for frequent small edits.
//
// Content is stored as an ordered list of pieces, each referencing a span
// of one of two backing buffers: the immutable original buffer (the text
// or bytes supplied at construction) and an append-only added buffer
// (text introduced by inserts). Edits splice pieces rather than rewriting
// contiguous buffers.
//
// The package provides:
//
//   - Validated coordinate types: Offset (0-based rune index), Position
//     (1-based line/column), Range (half-open rune span)
//   - A closed operation algebra: Insert, Delete, Replace and their
//     byte-level counterparts, each invertible given the prior text
//   - Atomic multi-operation transactions via Apply, with rollback on
//     failure and exactly one version bump per call
//   - An incrementally maintained line index for offset/position
//     conversion
//   - Synchronous change notification, one delivery per transaction
//   - Piece-table introspection via Diagnostics
//
// Basic usage:
//
//	doc := document.New("Hello")
//	res, err := doc.Apply([]document.Operation{
//	    document.Insert(5, " world"),
//	}, "user")
//	// doc.Text() == "Hello world"
//	// res.Inverses undoes the edit; reverse the slice before replaying.
//
// Byte view:
//
// NewFromBytes stores raw bytes verbatim. Bytes that are not valid UTF-8
// decode to one replacement character each in the text view; Bytes()
// always returns exactly what was stored or edited at the byte level.
// The text view always reflects decoding the full byte stream: a rune
// left dangling by one byte edit decodes per byte as replacement
// characters, and completes into its rune as soon as a later edit makes
// the sequence whole.
//
// Concurrency:
//
// Document has no internal locking and is single-writer by contract.
// Callers must serialize all mutating calls to an instance; change
// listeners run synchronously on the mutating goroutine.
package document
