package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/db"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/auth"
)

// FacultyService handles faculty directory operations. Provisioning a
// faculty member creates the account and the directory record together.
type FacultyService struct {
	pool           *pgxpool.Pool
	facultyRepo    *repositories.FacultyRepository
	accountRepo    *repositories.AccountRepository
	departmentRepo *repositories.DepartmentRepository
	logger         zerolog.Logger
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(
	pool *pgxpool.Pool,
	facultyRepo *repositories.FacultyRepository,
	accountRepo *repositories.AccountRepository,
	departmentRepo *repositories.DepartmentRepository,
	logger zerolog.Logger,
) *FacultyService {
	return &FacultyService{
		pool:           pool,
		facultyRepo:    facultyRepo,
		accountRepo:    accountRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// CreateFaculty provisions a faculty member: account and directory record
// in one transaction.
func (s *FacultyService) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*models.Faculty, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName", "full name cannot be empty")
	}
	designation := strings.TrimSpace(req.Designation)
	if designation == "" {
		return nil, apperrors.NewValidationError("designation", "designation cannot be empty")
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, apperrors.NewValidationError("departmentId", "department does not exist")
		}
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		FullName: fullName,
		Role:     models.RoleFaculty,
		IsActive: true,
	}
	faculty := &models.Faculty{
		DepartmentID: req.DepartmentID,
		Designation:  designation,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.accountRepo.CreateTx(ctx, tx, account); err != nil {
			return err
		}
		faculty.AccountID = account.ID
		return s.facultyRepo.CreateTx(ctx, tx, faculty)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("email already registered")
		}
		return nil, err
	}

	faculty.Account = account

	s.logger.Info().
		Int64("facultyId", faculty.ID).
		Int64("departmentId", req.DepartmentID).
		Msg("Faculty provisioned")

	return faculty, nil
}

// GetFacultyByID retrieves a faculty member by ID, including assigned
// subjects
func (s *FacultyService) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subjectIDs, err := s.facultyRepo.ListAssignedSubjectIDs(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}
	faculty.SubjectIDs = subjectIDs

	return faculty, nil
}

// GetAllFaculty retrieves faculty members, optionally filtered by
// department
func (s *FacultyService) GetAllFaculty(ctx context.Context, departmentID int64) ([]*models.Faculty, error) {
	return s.facultyRepo.GetAll(ctx, departmentID)
}

// UpdateFaculty updates a faculty member's department and designation
func (s *FacultyService) UpdateFaculty(ctx context.Context, faculty *models.Faculty) error {
	if strings.TrimSpace(faculty.Designation) == "" {
		return apperrors.NewValidationError("designation", "designation cannot be empty")
	}

	if _, err := s.departmentRepo.GetByID(ctx, faculty.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return apperrors.NewValidationError("departmentId", "department does not exist")
		}
		return err
	}

	return s.facultyRepo.Update(ctx, faculty)
}

// DeleteFaculty deletes a faculty member by ID
func (s *FacultyService) DeleteFaculty(ctx context.Context, id int64) error {
	return s.facultyRepo.Delete(ctx, id)
}
