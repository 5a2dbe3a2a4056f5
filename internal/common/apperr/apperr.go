package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced in the response envelope.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
)

// Error is the application error type rendered by the global fiber
// error handler. Services return it; controllers pass it through.
type Error struct {
	Status  int
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that an entity could not be resolved by identifier.
// The entity name is part of the message so the caller can tell a
// missing customer from a missing ticket.
func NotFound(entity, id string) *Error {
	return &Error{
		Status:  fiber.StatusNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

// Validation reports a field-level schema failure.
func Validation(field, message string) *Error {
	return &Error{
		Status:  fiber.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidID rejects a malformed identifier string before it reaches any
// service.
func InvalidID(field, value string) *Error {
	return &Error{
		Status:  fiber.StatusBadRequest,
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("invalid object id %q", value),
		Field:   field,
	}
}

// Unavailable wraps a store connectivity failure.
func Unavailable(err error) *Error {
	return &Error{
		Status:  fiber.StatusServiceUnavailable,
		Code:    CodeUnavailable,
		Message: "database unavailable",
		Err:     err,
	}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{
		Status:  fiber.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// IsNotFound reports whether err is a NOT_FOUND application error.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeNotFound
}
