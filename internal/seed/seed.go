package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/okaya/campusgate/internal/app/models"
	appRepos "github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/db"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/auth"
)

const defaultAdminEmail = "admin@campusgate.app"

// CreateDefaultData creates the default admin account and a starter
// directory (departments and courses) if they don't exist. Reruns are
// no-ops; duplicate errors are treated as "already seeded".
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	accountRepo := appRepos.NewAccountRepository(dbPool)
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Departments --- //
	departments := []*appModels.Department{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Electronics", Code: "EC"},
		{Name: "Mathematics", Code: "MATH"},
	}
	for _, dept := range departments {
		if err := departmentRepo.Create(ctx, dept); err != nil {
			if !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
				lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// --- Courses --- //
	csID, err := departmentIDByCode(ctx, departmentRepo, "CS")
	if err != nil {
		lgr.Error().Err(err).Msg("Error resolving CS department for default courses")
		finalErr = errors.Join(finalErr, err)
	} else {
		courses := []*appModels.Course{
			{Name: "BTech Computer Science", Code: "BTECH-CS", DepartmentID: csID, TotalSemesters: 8, Type: appModels.CourseUG},
			{Name: "MTech Computer Science", Code: "MTECH-CS", DepartmentID: csID, TotalSemesters: 4, Type: appModels.CoursePG},
		}
		for _, course := range courses {
			if err := courseRepo.Create(ctx, course); err != nil {
				if !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
					lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating default course")
					finalErr = errors.Join(finalErr, err)
				}
			}
		}
	}

	// --- Default Admin Account --- //
	_, err = accountRepo.GetByEmail(ctx, defaultAdminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin account already exists, skipping creation")
	case errors.Is(err, apperrors.ErrAccountNotFound):
		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, hashErr := auth.HashPassword("Admin123!")
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}

		admin := &appModels.Account{
			Email:    defaultAdminEmail,
			Password: hashedPassword,
			FullName: "System Administrator",
			Role:     appModels.RoleAdmin,
			IsActive: true,
		}
		createErr := db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
			return accountRepo.CreateTx(ctx, tx, admin)
		})
		if createErr != nil && !errors.Is(createErr, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(createErr).Msg("Error creating admin account")
			finalErr = errors.Join(finalErr, createErr)
		} else if createErr == nil {
			lgr.Info().Int64("adminID", admin.ID).Msg("Default admin account created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func departmentIDByCode(ctx context.Context, repo *appRepos.DepartmentRepository, code string) (int64, error) {
	departments, err := repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, dept := range departments {
		if dept.Code == code {
			return dept.ID, nil
		}
	}
	return 0, apperrors.ErrDepartmentNotFound
}
