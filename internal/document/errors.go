// Package document provides the normalized read/write operations over a CVDocument.
package document

import "fmt"

// InvalidIndexError indicates a list operation addressed an index outside the
// current bounds of the list. The document is left unchanged.
type InvalidIndexError struct {
	List   ListName
	Index  int
	Length int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index %d for list %q (length %d)", e.Index, e.List, e.Length)
}

// UnknownFieldError indicates SetField was called with a field name that is
// not a top-level scalar of the document.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown document field %q", e.Field)
}

// UnknownListError indicates a list operation named a list that does not
// exist on the document.
type UnknownListError struct {
	List ListName
}

func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown document list %q", e.List)
}
