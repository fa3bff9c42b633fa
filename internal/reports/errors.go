package reports

import (
	"errors"
	"fmt"
)

// InputError marks a request the caller can fix: unsupported or corrupt
// documents, empty job text. Never retried.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// NewInputError builds an InputError with the given message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// CollaboratorError marks a failed external call (LLM, course catalog).
// Bounded retries happen below this point; once surfaced the stage has
// failed for good.
type CollaboratorError struct {
	Stage string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// InternalError marks an invariant violation. Always fatal, never retried.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

// IsInputError reports whether err is caller-fixable.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsCollaboratorError reports whether err came from an external dependency.
func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
