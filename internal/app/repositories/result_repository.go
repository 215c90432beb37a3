package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okaya/campusgate/internal/app/models"
)

// ResultRepository handles database operations for the result ledger
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// Upsert records marks for one (student, subject, semester) tuple. An
// existing row is overwritten with the new marks, total and grade.
func (r *ResultRepository) Upsert(ctx context.Context, record *models.ResultRecord) error {
	query := `
		INSERT INTO results (student_id, subject_id, semester, internal_marks, external_marks, practical_marks, total_marks, grade, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT ON CONSTRAINT results_student_id_subject_id_semester_key
		DO UPDATE SET internal_marks = EXCLUDED.internal_marks,
		              external_marks = EXCLUDED.external_marks,
		              practical_marks = EXCLUDED.practical_marks,
		              total_marks = EXCLUDED.total_marks,
		              grade = EXCLUDED.grade,
		              recorded_at = NOW()
		RETURNING id, recorded_at
	`

	err := r.db.QueryRow(ctx, query,
		record.StudentID,
		record.SubjectID,
		record.Semester,
		record.InternalMarks,
		record.ExternalMarks,
		record.PracticalMarks,
		record.TotalMarks,
		record.Grade,
	).Scan(&record.ID, &record.RecordedAt)

	if err != nil {
		return fmt.Errorf("error upserting result: %w", err)
	}

	return nil
}

// ListByStudent returns a student's result sheet ordered by semester, then
// subject code, with subject details for display.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.ResultRecord, error) {
	query := `
		SELECT res.id, res.student_id, res.subject_id, res.semester,
		       res.internal_marks, res.external_marks, res.practical_marks,
		       res.total_marks, res.grade, res.recorded_at,
		       sub.code, sub.name
		FROM results res
		JOIN subjects sub ON sub.id = res.subject_id
		WHERE res.student_id = $1
		ORDER BY res.semester, sub.code
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ResultRecord
	for rows.Next() {
		var record models.ResultRecord
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.SubjectID,
			&record.Semester,
			&record.InternalMarks,
			&record.ExternalMarks,
			&record.PracticalMarks,
			&record.TotalMarks,
			&record.Grade,
			&record.RecordedAt,
			&record.SubjectCode,
			&record.SubjectName,
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
