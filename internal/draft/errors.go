// Package draft generates CV content with an LLM and reconciles the
// untrusted response into a trusted document.
package draft

import "fmt"

// GenerationError represents a failed draft-generation round trip. It is
// consumed at the reconciler boundary: callers surface it to the user as a
// notification, never as a failed state transition.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("draft generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("draft generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
