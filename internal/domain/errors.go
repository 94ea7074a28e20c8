package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrFlightNotFound     = fmt.Errorf("flight %w", ErrNotFound)
	ErrBookingNotFound    = fmt.Errorf("booking %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrNoAvailability     = errors.New("no available seats")
	ErrConflict           = errors.New("conflict")
	ErrUserExists         = fmt.Errorf("user already exists: %w", ErrConflict)
	ErrDuplicateReference = fmt.Errorf("duplicate booking reference: %w", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}
