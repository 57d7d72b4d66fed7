package catalog

import "errors"

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidInput = errors.New("invalid_input")
	ErrInvalidID    = errors.New("invalid_id")
)

// InputError carries per-field validation failures of an admin payload.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string { return "invalid catalog input" }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
