package booking

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an expected booking failure.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindUpstream   ErrorKind = "upstream"
)

// BookingError is the failure variant returned by the booking operations.
// Message is safe to show to the end user or relay through the model.
type BookingError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func newValidationError(msg string) error {
	return &BookingError{Kind: KindValidation, Message: msg}
}

func newConflictError(msg string) error {
	return &BookingError{Kind: KindConflict, Message: msg}
}

func newNotFoundError(msg string) error {
	return &BookingError{Kind: KindNotFound, Message: msg}
}

func newUpstreamError(msg string, err error) error {
	return &BookingError{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf returns the kind of a BookingError, or KindUpstream for anything else.
func KindOf(err error) ErrorKind {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUpstream
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
