package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/config"
	"github.com/okaya/campusgate/internal/middleware"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/logger"
)

// AdminController handles runtime administration endpoints
type AdminController struct {
	settings *config.Settings
}

// NewAdminController creates a new AdminController
func NewAdminController(settings *config.Settings) *AdminController {
	return &AdminController{settings: settings}
}

// ReloadSettings re-reads the reloadable configuration
// @Summary Reload settings
// @Description Re-reads the configuration file and swaps the grading table; an invalid file leaves current settings untouched
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=config.GradingConfig} "Settings reloaded"
// @Failure 400 {object} dto.ErrorResponse "Configuration file invalid"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/settings/reload [post]
func (c *AdminController) ReloadSettings(ctx *gin.Context) {
	grading, err := c.settings.Reload()
	if err != nil {
		logger.Warn().Err(err).Msg("Settings reload rejected")
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("config", err.Error()))
		return
	}

	logger.Info().Int("gradeCuts", len(grading.Cuts)).Msg("Settings reloaded")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grading, "Settings reloaded"))
}
