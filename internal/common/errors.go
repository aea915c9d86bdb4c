// Package common defines shared constants and sentinel errors used across
// client and server layers of FinTrack. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateIdentity = errors.New("identity already exists")

	// Service-level errors.
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("store unavailable")

	// Auth errors.
	ErrNoToken      = errors.New("no token provided")
	ErrTokenInvalid = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries a user-correctable message and matches
// ErrValidation via errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// ValidationMessage extracts the user-facing message of a validation error.
// The second result is false when err is not a validation error.
func ValidationMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg, true
	}
	if errors.Is(err, ErrValidation) {
		return ErrValidation.Error(), true
	}
	return "", false
}
