package service

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation      = errors.New("validation failure")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyAnswered = errors.New("already answered")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Error carries a fixed client-facing message next to its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func fail(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

var (
	errValidationFails  = fail(ErrValidation, "validation fails")
	errStudentExists    = fail(ErrConflict, "Student already exists.")
	errStudentNotFound  = fail(ErrNotFound, "Student not found.")
	errOrderNotFound    = fail(ErrNotFound, "Help order not found.")
	errOrderAnswered    = fail(ErrAlreadyAnswered, "Help order already answered.")
	errPlanExists       = fail(ErrConflict, "Plan already exists.")
	errPlanNotFound     = fail(ErrNotFound, "Plan not found.")
	errEnrollmentExists = fail(ErrConflict, "Student already has an enrollment.")
	errEnrollmentGone   = fail(ErrNotFound, "Enrollment not found.")
	errPastDate         = fail(ErrValidation, "Past dates are not permitted.")
	errUserNotFound     = fail(ErrUnauthorized, "User not found")
	errPasswordMismatch = fail(ErrUnauthorized, "Password does not match")
)

// Message returns the client-facing text of err, "" when err carries none.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
