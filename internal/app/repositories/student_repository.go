package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/dberrors"
)

// ErrNoPendingStudent is returned by Approve and Reject when the row was not
// in the pending state at the time of the write. The service layer turns it
// into NotFound or InvalidState after re-reading the record.
var ErrNoPendingStudent = errors.New("no pending student row matched")

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `s.id, s.account_id, s.department_id, s.course_id, s.semester,
	s.enrollment_number, s.roll_number, s.admission_year, s.status, s.rejection_reason,
	s.created_at, s.updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.AccountID,
		&student.DepartmentID,
		&student.CourseID,
		&student.Semester,
		&student.EnrollmentNumber,
		&student.RollNumber,
		&student.AdmissionYear,
		&student.Status,
		&student.RejectionReason,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateTx inserts a student record within an existing transaction.
// Self-registration creates a PENDING record; an admin-created student may
// already be APPROVED with its numbers assigned.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	query := `
		INSERT INTO students (account_id, department_id, course_id, semester,
			enrollment_number, roll_number, admission_year, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		student.AccountID,
		student.DepartmentID,
		student.CourseID,
		student.Semester,
		student.EnrollmentNumber,
		student.RollNumber,
		student.AdmissionYear,
		student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "students_account_id_key"):
			return apperrors.NewConflictError("account already has a student record")
		case dberrors.IsDuplicateConstraintError(err, "students_enrollment_number_key"):
			return apperrors.NewConflictError("enrollment number already assigned")
		case dberrors.IsDuplicateConstraintError(err, "students_roll_number_key"):
			return apperrors.NewConflictError("roll number already assigned")
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByAccountID retrieves the student record owned by an account. The
// access scoping layer resolves a student caller's own record through this.
func (r *StudentRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.account_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by account: %w", err)
	}

	return student, nil
}

// List retrieves students visible under the caller's scope predicate,
// ordered by roll number with pending records last.
func (r *StudentRepository) List(ctx context.Context, predicate scope.Predicate) ([]*models.Student, error) {
	if predicate.Empty() {
		return nil, nil
	}

	where, args := predicate.SQL("s", 1)
	query := `SELECT ` + studentColumns + `
		FROM students s
		WHERE ` + where + `
		ORDER BY s.roll_number ASC NULLS LAST, s.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// ListPending retrieves all students awaiting an admission decision, oldest
// registration first.
func (r *StudentRepository) ListPending(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `,
		       a.email, a.full_name
		FROM students s
		JOIN accounts a ON a.id = s.account_id
		WHERE s.status = $1
		ORDER BY s.created_at
	`

	rows, err := r.db.Query(ctx, query, models.ApprovalPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var account models.Account
		if err := rows.Scan(
			&student.ID,
			&student.AccountID,
			&student.DepartmentID,
			&student.CourseID,
			&student.Semester,
			&student.EnrollmentNumber,
			&student.RollNumber,
			&student.AdmissionYear,
			&student.Status,
			&student.RejectionReason,
			&student.CreatedAt,
			&student.UpdatedAt,
			&account.Email,
			&account.FullName,
		); err != nil {
			return nil, err
		}
		account.ID = student.AccountID
		account.Role = models.RoleStudent
		student.Account = &account
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Approve transitions a pending student to APPROVED and assigns its
// enrollment identifiers in one atomic statement. The status guard in the
// WHERE clause makes the transition race-free: of two concurrent approvals
// only one can see the PENDING row. The partial unique indexes on
// enrollment_number and roll_number are the authority on number uniqueness;
// a violation surfaces as Conflict, never as two coexisting rows.
func (r *StudentRepository) Approve(ctx context.Context, id int64, assignment models.AdmissionAssignment) (*models.Student, error) {
	query := `
		UPDATE students s
		SET status = $2, department_id = $3, course_id = $4, semester = $5,
			enrollment_number = $6, roll_number = $7, updated_at = NOW()
		WHERE s.id = $1 AND s.status = $8
		RETURNING ` + studentColumns

	student, err := scanStudent(r.db.QueryRow(ctx, query,
		id,
		models.ApprovalApproved,
		assignment.DepartmentID,
		assignment.CourseID,
		assignment.Semester,
		assignment.EnrollmentNumber,
		assignment.RollNumber,
		models.ApprovalPending,
	))

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNoPendingStudent
		case dberrors.IsDuplicateConstraintError(err, "students_enrollment_number_key"):
			return nil, apperrors.NewConflictError("enrollment number already assigned to another student")
		case dberrors.IsDuplicateConstraintError(err, "students_roll_number_key"):
			return nil, apperrors.NewConflictError("roll number already assigned to another student")
		case dberrors.IsForeignKeyViolation(err):
			return nil, apperrors.NewValidationError("departmentId", "referenced department or course does not exist")
		}
		return nil, fmt.Errorf("error approving student: %w", err)
	}

	return student, nil
}

// Reject transitions a pending student to REJECTED, storing the reason for
// audit. Same status-guarded single statement as Approve.
func (r *StudentRepository) Reject(ctx context.Context, id int64, reason string) (*models.Student, error) {
	query := `
		UPDATE students s
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE s.id = $1 AND s.status = $4
		RETURNING ` + studentColumns

	student, err := scanStudent(r.db.QueryRow(ctx, query,
		id,
		models.ApprovalRejected,
		reason,
		models.ApprovalPending,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPendingStudent
		}
		return nil, fmt.Errorf("error rejecting student: %w", err)
	}

	return student, nil
}
