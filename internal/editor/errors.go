// Package editor provides the multi-step CV editor session and its state machine.
package editor

import "fmt"

// ValidationError indicates a guarded transition was rejected because a
// required seed field is missing. The session does not move.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// TransitionError indicates a trigger that is not legal from the current
// step. The session does not move.
type TransitionError struct {
	From    Step
	Trigger string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition: %q from step %q", e.Trigger, e.From)
}
