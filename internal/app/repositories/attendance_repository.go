package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/scope"
)

// AttendanceRepository handles database operations for the attendance ledger
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert writes one attendance fact. The unique constraint on
// (student_id, subject_id, date) makes repeated marking idempotent: an
// existing row is overwritten with the new status and marking faculty.
// Returns whether a new row was created (as opposed to updated).
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	query := `
		INSERT INTO attendance (student_id, subject_id, faculty_id, date, status, marked_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT ON CONSTRAINT attendance_student_id_subject_id_date_key
		DO UPDATE SET status = EXCLUDED.status, faculty_id = EXCLUDED.faculty_id, marked_at = NOW()
		RETURNING id, marked_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		record.StudentID,
		record.SubjectID,
		record.FacultyID,
		record.Date,
		record.Status,
	).Scan(&record.ID, &record.MarkedAt, &inserted)

	if err != nil {
		return false, fmt.Errorf("error upserting attendance: %w", err)
	}

	return inserted, nil
}

// ListBySubjectDate returns the attendance roster for a subject and date,
// restricted by the caller's scope predicate and ordered by roll number
// ascending for a stable class roster.
func (r *AttendanceRepository) ListBySubjectDate(ctx context.Context, subjectID int64, date time.Time, predicate scope.Predicate) ([]*models.AttendanceRecord, error) {
	if predicate.Empty() {
		return nil, nil
	}

	where, scopeArgs := predicate.SQL("s", 3)
	args := append([]interface{}{subjectID, date}, scopeArgs...)

	query := `
		SELECT ar.id, ar.student_id, ar.subject_id, ar.faculty_id, ar.date, ar.status, ar.marked_at,
		       COALESCE(s.roll_number, ''), a.full_name
		FROM attendance ar
		JOIN students s ON s.id = ar.student_id
		JOIN accounts a ON a.id = s.account_id
		WHERE ar.subject_id = $1 AND ar.date = $2 AND ` + where + `
		ORDER BY s.roll_number ASC NULLS LAST, s.id
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		var record models.AttendanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.SubjectID,
			&record.FacultyID,
			&record.Date,
			&record.Status,
			&record.MarkedAt,
			&record.StudentRoll,
			&record.StudentName,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ListByStudent returns a student's own attendance history, newest day
// first, with subject codes for display.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	query := `
		SELECT ar.id, ar.student_id, ar.subject_id, ar.faculty_id, ar.date, ar.status, ar.marked_at,
		       sub.code
		FROM attendance ar
		JOIN subjects sub ON sub.id = ar.subject_id
		WHERE ar.student_id = $1
		ORDER BY ar.date DESC, sub.code
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		var record models.AttendanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.SubjectID,
			&record.FacultyID,
			&record.Date,
			&record.Status,
			&record.MarkedAt,
			&record.SubjectCode,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
