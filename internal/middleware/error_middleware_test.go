package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return recorder, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("date", "bad date"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid state", apperrors.NewInvalidStateError("already decided"), http.StatusBadRequest, dto.ErrorCodeResourceInvalidState},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"forbidden", apperrors.NewForbiddenError("outside scope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not found kind", apperrors.NewNotFoundError("student not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"not found sentinel", apperrors.ErrSubjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"conflict", apperrors.NewConflictError("email already registered"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate sentinel", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"unavailable", apperrors.NewUnavailableError("storage timeout"), http.StatusServiceUnavailable, dto.ErrorCodeServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := respondWith(t, tt.err)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
			if body.Error == nil {
				t.Fatal("response has no error detail")
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestForbiddenBodyIsUniform(t *testing.T) {
	_, missing := respondWith(t, apperrors.NewForbiddenError("student does not exist"))
	_, outOfScope := respondWith(t, apperrors.NewForbiddenError("student is outside the caller's scope"))

	if missing.Error.Message != outOfScope.Error.Message {
		t.Errorf("forbidden bodies differ: %q vs %q", missing.Error.Message, outOfScope.Error.Message)
	}
	if missing.Error.Message != "Permission denied" {
		t.Errorf("forbidden message = %q, want the fixed text", missing.Error.Message)
	}
}

func TestValidationFieldPropagates(t *testing.T) {
	_, body := respondWith(t, apperrors.NewValidationError("rollNumber", "roll number cannot be empty"))
	if body.Error.Field != "rollNumber" {
		t.Errorf("field = %q, want rollNumber", body.Error.Field)
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	_, body := respondWith(t, errors.New("pq: connection reset by peer"))
	if body.Error.Message != "Internal server error" {
		t.Errorf("message = %q, leaked internal detail", body.Error.Message)
	}
}
