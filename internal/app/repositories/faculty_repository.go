package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/dberrors"
)

// FacultyRepository handles database operations for faculty records
type FacultyRepository struct {
	db *pgxpool.Pool
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// CreateTx inserts a faculty record within an existing transaction, so the
// account and the faculty row are created atomically.
func (r *FacultyRepository) CreateTx(ctx context.Context, tx pgx.Tx, faculty *models.Faculty) error {
	query := `
		INSERT INTO faculty (account_id, department_id, designation)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query, faculty.AccountID, faculty.DepartmentID, faculty.Designation).Scan(&faculty.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_account_id_key") {
			return apperrors.NewConflictError("account already has a faculty record")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating faculty: %w", err)
	}

	return nil
}

// GetByID retrieves a faculty record by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	query := `
		SELECT f.id, f.account_id, f.department_id, f.designation
		FROM faculty f
		WHERE f.id = $1
	`

	var faculty models.Faculty
	err := r.db.QueryRow(ctx, query, id).Scan(
		&faculty.ID,
		&faculty.AccountID,
		&faculty.DepartmentID,
		&faculty.Designation,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	return &faculty, nil
}

// GetByAccountID retrieves the faculty record for a caller's account. The
// access scoping layer resolves faculty department visibility through this.
func (r *FacultyRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.Faculty, error) {
	query := `
		SELECT f.id, f.account_id, f.department_id, f.designation
		FROM faculty f
		WHERE f.account_id = $1
	`

	var faculty models.Faculty
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&faculty.ID,
		&faculty.AccountID,
		&faculty.DepartmentID,
		&faculty.Designation,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty by account: %w", err)
	}

	return &faculty, nil
}

// GetAll retrieves all faculty records with account names.
func (r *FacultyRepository) GetAll(ctx context.Context, departmentID int64) ([]*models.Faculty, error) {
	query := `
		SELECT f.id, f.account_id, f.department_id, f.designation,
		       a.id, a.email, a.full_name, a.role, a.is_active, a.created_at, a.updated_at
		FROM faculty f
		JOIN accounts a ON a.id = f.account_id
	`
	var args []interface{}
	if departmentID > 0 {
		query += ` WHERE f.department_id = $1`
		args = append(args, departmentID)
	}
	query += ` ORDER BY a.full_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faculties []*models.Faculty
	for rows.Next() {
		var faculty models.Faculty
		var account models.Account
		if err := rows.Scan(
			&faculty.ID,
			&faculty.AccountID,
			&faculty.DepartmentID,
			&faculty.Designation,
			&account.ID,
			&account.Email,
			&account.FullName,
			&account.Role,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		faculty.Account = &account
		faculties = append(faculties, &faculty)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return faculties, nil
}

// ListAssignedSubjectIDs returns the subjects assigned to a faculty member.
func (r *FacultyRepository) ListAssignedSubjectIDs(ctx context.Context, facultyID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM subjects WHERE faculty_id = $1 ORDER BY id`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Update updates a faculty record's mutable fields
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	query := `
		UPDATE faculty
		SET department_id = $2, designation = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, faculty.ID, faculty.DepartmentID, faculty.Designation)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error updating faculty: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// Delete deletes a faculty record
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("faculty has associated data and cannot be deleted")
		}
		return fmt.Errorf("error deleting faculty: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}
