// Package history provides a linear undo/redo log over document snapshots.
package history

import "github.com/jonathan/cv-studio/internal/types"

// Log is a linear snapshot history with a movable cursor. Recording after an
// undo discards the redo branch; this is standard linear-undo semantics, not
// a tree.
type Log struct {
	snapshots []*types.CVDocument
	cursor    int
}

// NewLog creates a history whose first entry is the initial document.
func NewLog(initial *types.CVDocument) *Log {
	return &Log{snapshots: []*types.CVDocument{initial}}
}

// Record truncates any redo branch and appends doc as the newest snapshot.
func (l *Log) Record(doc *types.CVDocument) {
	l.snapshots = append(l.snapshots[:l.cursor+1], doc)
	l.cursor = len(l.snapshots) - 1
}

// Undo moves the cursor one snapshot back. Returns (nil, false) when already
// at the oldest snapshot; the caller keeps its current document.
func (l *Log) Undo() (*types.CVDocument, bool) {
	if l.cursor == 0 {
		return nil, false
	}
	l.cursor--
	return l.snapshots[l.cursor], true
}

// Redo moves the cursor one snapshot forward. Returns (nil, false) when there
// is no discarded-future to return to.
func (l *Log) Redo() (*types.CVDocument, bool) {
	if l.cursor >= len(l.snapshots)-1 {
		return nil, false
	}
	l.cursor++
	return l.snapshots[l.cursor], true
}

// CanUndo reports whether an older snapshot exists.
func (l *Log) CanUndo() bool {
	return l.cursor > 0
}

// CanRedo reports whether a newer snapshot exists.
func (l *Log) CanRedo() bool {
	return l.cursor < len(l.snapshots)-1
}

// Len returns the number of snapshots currently held.
func (l *Log) Len() int {
	return len(l.snapshots)
}
