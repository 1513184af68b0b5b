package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is returned by a Repository when the short code is already taken.
	ErrConflict = errors.New("short code already exists")
	// ErrExhausted means no free code was found within the attempt budget.
	ErrExhausted = errors.New("short code space exhausted")
)

// ValidationError identifies which field was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ExhaustedError reports the budget that was spent without finding a free code.
// Seeing it means the code length is too small for the current population.
type ExhaustedError struct {
	Attempts   int
	CodeLength int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no free short code of length %d after %d attempts", e.CodeLength, e.Attempts)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
