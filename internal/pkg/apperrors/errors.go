package apperrors

import "errors"

// Error kinds. Every error that crosses the service boundary wraps exactly
// one of these so the HTTP layer can map it to a status code.
var (
	// ErrValidation indicates malformed input or an out-of-range value.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness constraint violation.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState indicates a workflow transition attempted from a
	// state that does not permit it.
	ErrInvalidState = errors.New("invalid state")
	// ErrForbidden indicates the caller's role or scope does not cover the
	// target. The response body is identical whether or not the target
	// exists.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrUnavailable indicates a storage timeout or outage. The caller may
	// retry the whole request; no write path retries internally.
	ErrUnavailable = errors.New("service unavailable")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// Account errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Directory errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrCourseNotFound          = errors.New("course not found")
	ErrCourseAlreadyExists     = errors.New("course with this code already exists")
	ErrSubjectNotFound         = errors.New("subject not found")
	ErrSubjectAlreadyExists    = errors.New("subject with this code already exists")
	ErrFacultyNotFound         = errors.New("faculty not found")
	ErrStudentNotFound         = errors.New("student not found")
	ErrNoticeNotFound          = errors.New("notice not found")
)

// CustomError carries a message and an optional field path alongside the
// wrapped kind.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithField attaches a field path to the error.
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// NewValidationError creates a validation error with a field path.
func NewValidationError(field, message string) error {
	return &CustomError{Err: ErrValidation, Message: message, Field: field}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewInvalidStateError creates an invalid-state error with a message.
func NewInvalidStateError(message string) error {
	return &CustomError{Err: ErrInvalidState, Message: message}
}

// NewForbiddenError creates a forbidden error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewUnavailableError creates an unavailable error with a message.
func NewUnavailableError(message string) error {
	return &CustomError{Err: ErrUnavailable, Message: message}
}

// FieldOf returns the field path attached to err, if any.
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// Is reports whether err matches target or any error in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
