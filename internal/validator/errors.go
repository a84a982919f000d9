package validator

import "errors"

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// FieldError names the offending field; Error() is safe to show to the caller.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
