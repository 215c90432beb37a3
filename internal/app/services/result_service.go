package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/config"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// ResultStore is the slice of the result repository the service needs.
type ResultStore interface {
	Upsert(ctx context.Context, record *models.ResultRecord) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.ResultRecord, error)
}

// ResultService handles the result ledger. Recording marks is an upsert
// keyed on (student, subject, semester); the total is always recomputed
// from the components and the grade always derived from the configured cut
// table.
type ResultService struct {
	results  ResultStore
	subjects SubjectStore
	students StudentReader
	scopes   ScopeResolver
	settings *config.Settings
	logger   zerolog.Logger
}

// NewResultService creates a new result service
func NewResultService(
	results ResultStore,
	subjects SubjectStore,
	students StudentReader,
	scopes ScopeResolver,
	settings *config.Settings,
	logger zerolog.Logger,
) *ResultService {
	return &ResultService{
		results:  results,
		subjects: subjects,
		students: students,
		scopes:   scopes,
		settings: settings,
		logger:   logger,
	}
}

// Record stores marks for one (student, subject, semester) tuple,
// overwriting any previous entry for the same tuple.
func (s *ResultService) Record(ctx context.Context, caller scope.Caller, studentID, subjectID int64, semester int, req dto.RecordResultRequest) (*models.ResultRecord, error) {
	if err := validateMarks(req); err != nil {
		return nil, err
	}
	if semester < models.MinSemester || semester > models.MaxSemester {
		return nil, apperrors.NewValidationError("semester",
			fmt.Sprintf("semester must be between %d and %d", models.MinSemester, models.MaxSemester))
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewNotFoundError("subject not found")
		}
		return nil, err
	}
	if semester != subject.Semester {
		return nil, apperrors.NewValidationError("semester", "semester does not match the subject's semester")
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, err
	}
	if student.Status != models.ApprovalApproved {
		return nil, apperrors.NewInvalidStateError("student admission is not approved")
	}
	if student.CourseID == nil || *student.CourseID != subject.CourseID {
		return nil, apperrors.NewValidationError("subjectId", "subject does not belong to the student's course")
	}

	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionResults)
	if err != nil {
		return nil, err
	}
	if !predicate.AllowsStudent(student) {
		return nil, apperrors.NewForbiddenError("student is outside the caller's scope")
	}

	// The stored total is always the recomputed sum. A supplied total
	// only cross-checks the caller's arithmetic.
	total := req.InternalMarks + req.ExternalMarks + req.PracticalMarks
	if req.TotalMarks != nil && *req.TotalMarks != total {
		return nil, apperrors.NewValidationError("totalMarks",
			fmt.Sprintf("total must equal the sum of components (%d)", total))
	}

	record := &models.ResultRecord{
		StudentID:      studentID,
		SubjectID:      subjectID,
		Semester:       semester,
		InternalMarks:  req.InternalMarks,
		ExternalMarks:  req.ExternalMarks,
		PracticalMarks: req.PracticalMarks,
		TotalMarks:     total,
		Grade:          models.Grade(gradeFor(s.settings.Grading(), total, models.MaxTotalMarks)),
	}

	if err := s.results.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", studentID).
		Int64("subjectId", subjectID).
		Int("semester", semester).
		Str("grade", string(record.Grade)).
		Msg("Result recorded")

	return record, nil
}

// StudentResults returns the calling student's own result sheet.
func (s *ResultService) StudentResults(ctx context.Context, caller scope.Caller) ([]*models.ResultRecord, error) {
	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionResults)
	if err != nil {
		return nil, err
	}

	studentID, ok := predicate.StudentID()
	if !ok {
		return nil, apperrors.NewForbiddenError("result history is limited to the owning student")
	}

	return s.results.ListByStudent(ctx, studentID)
}

func validateMarks(req dto.RecordResultRequest) error {
	if req.InternalMarks < 0 || req.InternalMarks > models.MaxInternalMarks {
		return apperrors.NewValidationError("internalMarks",
			fmt.Sprintf("internal marks must be between 0 and %d", models.MaxInternalMarks))
	}
	if req.ExternalMarks < 0 || req.ExternalMarks > models.MaxExternalMarks {
		return apperrors.NewValidationError("externalMarks",
			fmt.Sprintf("external marks must be between 0 and %d", models.MaxExternalMarks))
	}
	if req.PracticalMarks < 0 || req.PracticalMarks > models.MaxPracticalMarks {
		return apperrors.NewValidationError("practicalMarks",
			fmt.Sprintf("practical marks must be between 0 and %d", models.MaxPracticalMarks))
	}
	return nil
}
