package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries per-field messages for a rejected signup. It is a
// recoverable outcome, not a store failure: the API layer renders it as a
// structured 400 body.
type ValidationError struct {
	Errors map[string]string
}

func NewValidationError(errs map[string]string) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
