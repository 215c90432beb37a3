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

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create creates a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, code, course_id, semester, credits, faculty_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		subject.Name,
		subject.Code,
		subject.CourseID,
		subject.Semester,
		subject.Credits,
		subject.FacultyID,
	).Scan(&subject.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_code_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, code, course_id, semester, credits, faculty_id
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Code,
		&subject.CourseID,
		&subject.Semester,
		&subject.Credits,
		&subject.FacultyID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// GetAll retrieves subjects, optionally filtered by course and semester.
func (r *SubjectRepository) GetAll(ctx context.Context, courseID int64, semester int) ([]*models.Subject, error) {
	query := `
		SELECT id, name, code, course_id, semester, credits, faculty_id
		FROM subjects
	`
	var args []interface{}
	var clauses []string
	if courseID > 0 {
		args = append(args, courseID)
		clauses = append(clauses, fmt.Sprintf("course_id = $%d", len(args)))
	}
	if semester > 0 {
		args = append(args, semester)
		clauses = append(clauses, fmt.Sprintf("semester = $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += ` ORDER BY semester, code`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Code,
			&subject.CourseID,
			&subject.Semester,
			&subject.Credits,
			&subject.FacultyID,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Update updates a subject's mutable fields, including faculty assignment.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $2, code = $3, course_id = $4, semester = $5, credits = $6, faculty_id = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		subject.ID,
		subject.Name,
		subject.Code,
		subject.CourseID,
		subject.Semester,
		subject.Credits,
		subject.FacultyID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_code_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("courseId", "referenced course or faculty does not exist")
		}
		return fmt.Errorf("error updating subject: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// Delete deletes a subject
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("subject has attendance or results and cannot be deleted")
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
