package service

import "errors"

// Domain errors. Handlers map these to HTTP status codes.
var (
	ErrValidation        = errors.New("validation error")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("record belongs to another user")
)

// ValidationError describes a rejected input field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
