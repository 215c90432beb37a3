package dto

import (
	"time"

	"github.com/okaya/campusgate/internal/app/models"
)

// CreateNoticeRequest represents notice creation data
type CreateNoticeRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Audience    models.NoticeAudience `json:"audience" binding:"required"`
	ExpiresAt   *time.Time            `json:"expiresAt,omitempty"`
}