package entity

import "errors"

// ErrNotFound signals that a referenced notification does not exist.
var ErrNotFound = errors.New("notification not found")

// ForbiddenError signals that the actor lacks the relationship or role the
// operation requires. The reason is safe to surface to clients.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// Forbidden builds a ForbiddenError with the given reason.
func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}

// ValidationError signals malformed or out-of-range field values.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Invalid builds a ValidationError with the given reason.
func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
