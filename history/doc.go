// Package history records undo/redo state as stacks of edit groups.
//
// An EditGroup is one undo unit: its forward operations in application
// order, their inverses in reverse application order, and cursor-set
// snapshots from immediately before and after the group. Groups form
// through two mechanisms:
//
//   - Coalescing: sequential single-grapheme inserts, each immediately
//     adjacent to the previous one's end and recorded coalescable, merge
//     into one group — so typing a word undoes in one step.
//   - Explicit grouping: BeginGroup/CommitGroup with a nesting counter;
//     only the outermost commit pushes the accumulated group.
//
// The history never touches a document itself. Undo and Redo hand the
// popped group back to the caller, who replays its operations against the
// document and restores the matching cursor snapshot.
//
// History is not safe for concurrent use.
package history
