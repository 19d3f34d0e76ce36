package rdc

import "errors"

var (
	ErrUnknownClassification = errors.New("unknown classification")
	ErrMissingAttribute      = errors.New("missing attribute")
	ErrUnexpectedShape       = errors.New("unexpected triple shape")
)

// FieldError ties a failure to the attribute path it was read from, e.g.
// "child2.child1.mass".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
