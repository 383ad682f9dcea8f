// Package rendering provides the CV template gallery and HTML rendering.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// SelectionError indicates a template or palette index outside the registry.
type SelectionError struct {
	Kind  string
	Index int
	Count int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid %s index %d (registry holds %d)", e.Kind, e.Index, e.Count)
}
