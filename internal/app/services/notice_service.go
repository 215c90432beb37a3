package services

import (
	"context"
	"strings"
	"time"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// NoticeService handles the notice board
type NoticeService struct {
	noticeRepo *repositories.NoticeRepository
}

// NewNoticeService creates a new notice service instance
func NewNoticeService(noticeRepo *repositories.NoticeRepository) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo}
}

// CreateNotice publishes a notice on behalf of the calling account
func (s *NoticeService) CreateNotice(ctx context.Context, caller scope.Caller, req dto.CreateNoticeRequest) (*models.Notice, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title cannot be empty")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description", "description cannot be empty")
	}
	if !req.Audience.Valid() {
		return nil, apperrors.NewValidationError("audience", "audience must be STUDENTS, FACULTY or ALL")
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		return nil, apperrors.NewValidationError("expiresAt", "expiry must be in the future")
	}

	notice := &models.Notice{
		Title:       title,
		Description: description,
		Audience:    req.Audience,
		PublishedBy: caller.AccountID,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}

// ListNotices returns the unexpired notices visible to the caller's role.
// Admins see everything; faculty and students see their audience plus ALL.
func (s *NoticeService) ListNotices(ctx context.Context, caller scope.Caller) ([]*models.Notice, error) {
	switch caller.Role {
	case models.RoleAdmin:
		return s.noticeRepo.ListAll(ctx)
	case models.RoleFaculty:
		return s.noticeRepo.List(ctx, models.AudienceFaculty)
	case models.RoleStudent:
		return s.noticeRepo.List(ctx, models.AudienceStudents)
	}
	return nil, apperrors.NewForbiddenError("unknown role")
}

// GetNotice returns one notice if the caller's audience covers it. Expired
// notices stay readable by direct ID; only listings filter them out.
func (s *NoticeService) GetNotice(ctx context.Context, caller scope.Caller, id int64) (*models.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if notice.Audience != models.AudienceAll {
		switch caller.Role {
		case models.RoleAdmin:
		case models.RoleFaculty:
			if notice.Audience != models.AudienceFaculty {
				return nil, apperrors.NewForbiddenError("notice is not addressed to this audience")
			}
		case models.RoleStudent:
			if notice.Audience != models.AudienceStudents {
				return nil, apperrors.NewForbiddenError("notice is not addressed to this audience")
			}
		default:
			return nil, apperrors.NewForbiddenError("unknown role")
		}
	}

	return notice, nil
}

// DeleteNotice removes a notice
func (s *NoticeService) DeleteNotice(ctx context.Context, id int64) error {
	return s.noticeRepo.Delete(ctx, id)
}
