package workflow

// ValidationError reports a missing or malformed field on a
// submission. The form re-renders with the message inline and keeps
// its state; nothing was written.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) error {
    return &ValidationError{Field: field, Message: message}
}

// PreconditionError reports a submission that is well-formed but not
// allowed yet: checking out without a prior check-in, checking into a
// task before the staff check-in has settled, or exhausting the link
// regeneration cap. The transition is aborted with nothing written.
type PreconditionError struct {
    Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func blocked(message string) error {
    return &PreconditionError{Message: message}
}
