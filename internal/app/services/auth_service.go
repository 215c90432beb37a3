package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

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

// AuthService handles authentication and applicant registration. Public
// registration always produces a student account with a PENDING admission
// record; staff accounts are provisioned through the faculty directory.
type AuthService struct {
	pool        *pgxpool.Pool
	accountRepo *repositories.AccountRepository
	studentRepo *repositories.StudentRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	pool *pgxpool.Pool,
	accountRepo *repositories.AccountRepository,
	studentRepo *repositories.StudentRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		pool:        pool,
		accountRepo: accountRepo,
		studentRepo: studentRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates an applicant account and its pending admission record in
// one transaction, then signs the new account in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName", "full name cannot be empty")
	}
	if req.AdmissionYear < 2000 || req.AdmissionYear > time.Now().Year()+1 {
		return nil, apperrors.NewValidationError("admissionYear", "admission year is out of range")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		FullName: fullName,
		Role:     models.RoleStudent,
		IsActive: true,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.accountRepo.CreateTx(ctx, tx, account); err != nil {
			return err
		}

		student := &models.Student{
			AccountID:     account.ID,
			AdmissionYear: req.AdmissionYear,
			Status:        models.ApprovalPending,
		}
		return s.studentRepo.CreateTx(ctx, tx, student)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("email already registered")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("accountId", account.ID).
		Int("admissionYear", req.AdmissionYear).
		Msg("Applicant registered")

	return s.authResponse(account)
}

// Login verifies credentials and issues an access token. A missing account
// and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.authResponse(account)
}

func (s *AuthService) authResponse(account *models.Account) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Account: dto.AccountResponse{
			ID:       account.ID,
			Email:    account.Email,
			FullName: account.FullName,
			Role:     string(account.Role),
		},
	}, nil
}

// validatePassword checks password strength beyond the binding-level length
// requirement.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password", "password must be at least 8 characters long")
	}

	hasLetter, hasDigit := false, false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("password", "password must contain at least one letter and one digit")
	}

	return nil
}
