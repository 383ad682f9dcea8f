// Package export coordinates public sharing and document export rendering.
package export

import (
	"errors"
	"fmt"
)

// ErrNotSaved indicates a share toggle on a document that was never
// persisted. The user must save first.
var ErrNotSaved = errors.New("cv must be saved before sharing")

// ErrNoShareToken indicates a share URL was requested before the store
// issued a token.
var ErrNoShareToken = errors.New("no share token available")

// RenderFailure represents a failed export render round trip.
type RenderFailure struct {
	Format Format
	Cause  error
}

func (e *RenderFailure) Error() string {
	return fmt.Sprintf("export render failed for %s: %v", e.Format, e.Cause)
}

func (e *RenderFailure) Unwrap() error {
	return e.Cause
}

// FormatError indicates an unsupported export format string.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q", e.Value)
}
