package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// respondMissingIdentity answers a request that reached a protected handler
// without a verified identity on its context.
func respondMissingIdentity(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// invalidIDError builds the validation error for a malformed ID parameter.
func invalidIDError(name string) error {
	return apperrors.NewValidationError(name, name+" must be a positive number")
}
