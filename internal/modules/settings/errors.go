package settings

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSection = errors.New("unknown_section")
	ErrUnknownKey     = errors.New("unknown_key")
	ErrInvalidValue   = errors.New("invalid_value")
	ErrInvalid        = errors.New("invalid_settings")
)

// ValidationError lists the settings fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid settings: %v", e.Fields)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }
