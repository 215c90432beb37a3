package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorWrapsKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", NewValidationError("date", "date cannot be in the future"), ErrValidation},
		{"conflict", NewConflictError("email already registered"), ErrConflict},
		{"invalid state", NewInvalidStateError("admission already decided"), ErrInvalidState},
		{"forbidden", NewForbiddenError("outside caller scope"), ErrForbidden},
		{"not found", NewNotFoundError("student not found"), ErrNotFound},
		{"unavailable", NewUnavailableError("storage timeout"), ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
		})
	}
}

func TestCustomErrorMessage(t *testing.T) {
	err := NewValidationError("semester", "semester must be between 1 and 8")
	if err.Error() != "semester must be between 1 and 8" {
		t.Errorf("Error() = %q, want the message", err.Error())
	}

	bare := &CustomError{Err: ErrForbidden}
	if bare.Error() != ErrForbidden.Error() {
		t.Errorf("Error() without message = %q, want the kind's text", bare.Error())
	}
}

func TestFieldOf(t *testing.T) {
	err := NewValidationError("rollNumber", "roll number cannot be empty")
	if got := FieldOf(err); got != "rollNumber" {
		t.Errorf("FieldOf = %q, want rollNumber", got)
	}

	wrapped := fmt.Errorf("handling request: %w", err)
	if got := FieldOf(wrapped); got != "rollNumber" {
		t.Errorf("FieldOf through wrapping = %q, want rollNumber", got)
	}

	if got := FieldOf(errors.New("plain")); got != "" {
		t.Errorf("FieldOf on plain error = %q, want empty", got)
	}
}

func TestIsMatchesAnyTarget(t *testing.T) {
	if !Is(ErrStudentNotFound, ErrAccountNotFound, ErrSubjectNotFound, ErrStudentNotFound) {
		t.Error("Is did not match a listed sentinel")
	}
	if Is(ErrStudentNotFound, ErrAccountNotFound, ErrSubjectNotFound) {
		t.Error("Is matched a sentinel that was not listed")
	}
}
