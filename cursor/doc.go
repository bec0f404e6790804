// Package cursor provides cursor and selection tracking over document
// offsets.
//
// Cursor is an immutable value type pairing an insertion point with an
// optional selection anchor; when the anchor equals the position there is
// no selection. Set manages zero-or-more cursors for one editing session,
// always sorted ascending by position with exactly one entry flagged
// primary.
//
// Unlike editors that merge cursors eagerly, Set keeps duplicate and
// overlapping cursors until MergeOverlapping is called, so callers decide
// when identity is collapsed. InReverseOrder supports the back-to-front
// application order multi-cursor edits require, and Snapshot/Restore give
// the edit history an immutable capture of cursor state around a group.
//
// Set is not safe for concurrent use; protect it with external
// synchronization if shared across goroutines.
package cursor
