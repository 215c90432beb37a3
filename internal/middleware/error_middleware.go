package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/dberrors"
	"github.com/okaya/campusgate/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP response. Every error
// that crosses the controller boundary goes through here so the status
// mapping lives in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		if field := apperrors.FieldOf(err); field != "" {
			errorDetail = errorDetail.WithField(field)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrInvalidState):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceInvalidState, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenExpired):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenInvalid):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrForbidden):
		// One body for every forbidden outcome; it never confirms whether
		// the target exists.
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))

	case isNotFound(err):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrDepartmentAlreadyExists),
		errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrSubjectAlreadyExists):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
		c.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrUnavailable), dberrors.IsTimeout(err):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Storage unavailable")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, "Service temporarily unavailable, retry the request")
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

func isNotFound(err error) bool {
	return apperrors.Is(err, apperrors.ErrNotFound,
		apperrors.ErrAccountNotFound,
		apperrors.ErrDepartmentNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrSubjectNotFound,
		apperrors.ErrFacultyNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrNoticeNotFound,
	)
}

// HandleValidationError maps a request binding failure to a 400 response.
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
