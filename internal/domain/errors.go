package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by repositories and services. Controllers map them to
// HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound     = fmt.Errorf("event %w", ErrNotFound)
	ErrVenueNotFound     = fmt.Errorf("venue %w", ErrNotFound)
	ErrPerformerNotFound = fmt.Errorf("performer %w", ErrNotFound)

	ErrDuplicateEmail     = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrDuplicateUsername  = fmt.Errorf("username %w", ErrAlreadyExists)
	ErrDuplicateVenueName = fmt.Errorf("venue name %w", ErrAlreadyExists)
)

// ValidationError carries per-field messages. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Messages []string
}

// NewValidationError returns a *ValidationError with the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrInvalidInput.Error()
	}
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
