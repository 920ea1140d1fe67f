package quote

import (
	"errors"
	"fmt"
)

var (
	// ErrQuoteNotFound indicates the quote doesn't exist.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrInvalidInput indicates invalid input for quote operations.
	ErrInvalidInput = errors.New("invalid quote input")
)

// ValidationError describes a field that failed validation. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
