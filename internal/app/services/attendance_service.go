package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
	"github.com/okaya/campusgate/internal/pkg/helpers"
)

// ScopeResolver computes the caller's predicate over a record collection.
type ScopeResolver interface {
	Scope(ctx context.Context, caller scope.Caller, collection scope.Collection) (scope.Predicate, error)
}

// SubjectStore resolves subjects referenced by ledger writes.
type SubjectStore interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// StudentReader resolves student records targeted by ledger writes.
type StudentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// FacultyReader resolves the faculty record behind a marking caller.
type FacultyReader interface {
	GetByAccountID(ctx context.Context, accountID int64) (*models.Faculty, error)
}

// AttendanceStore is the slice of the attendance repository the service
// needs.
type AttendanceStore interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error)
	ListBySubjectDate(ctx context.Context, subjectID int64, date time.Time, predicate scope.Predicate) ([]*models.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error)
}

// AttendanceService handles the attendance ledger. Marking is an upsert
// keyed on (student, subject, date): re-marking overwrites, it never
// duplicates.
type AttendanceService struct {
	attendance AttendanceStore
	subjects   SubjectStore
	students   StudentReader
	faculty    FacultyReader
	scopes     ScopeResolver
	logger     zerolog.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendance AttendanceStore,
	subjects SubjectStore,
	students StudentReader,
	faculty FacultyReader,
	scopes ScopeResolver,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		subjects:   subjects,
		students:   students,
		faculty:    faculty,
		scopes:     scopes,
		logger:     logger,
	}
}

// MarkOne records one student's attendance for a subject on a day. Returns
// the stored record and whether it was newly created rather than
// overwritten.
func (s *AttendanceService) MarkOne(ctx context.Context, caller scope.Caller, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, bool, error) {
	date, err := s.validateDate(req.Date)
	if err != nil {
		return nil, false, err
	}
	if !req.Status.Valid() {
		return nil, false, apperrors.NewValidationError("status", "status must be PRESENT or ABSENT")
	}

	if _, err := s.subjects.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, false, apperrors.NewNotFoundError("subject not found")
		}
		return nil, false, err
	}

	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionAttendance)
	if err != nil {
		return nil, false, err
	}

	markerID, err := s.markerFacultyID(ctx, caller)
	if err != nil {
		return nil, false, err
	}

	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		FacultyID: markerID,
		Date:      date,
		Status:    req.Status,
	}

	if err := s.checkStudentWritable(ctx, req.StudentID, predicate); err != nil {
		return nil, false, err
	}

	created, err := s.attendance.Upsert(ctx, record)
	if err != nil {
		return nil, false, err
	}

	return record, created, nil
}

// MarkBulk records a whole class session. The subject, date and caller
// scope are resolved once; each entry is then applied independently, so one
// bad entry never blocks or rolls back the rest.
func (s *AttendanceService) MarkBulk(ctx context.Context, caller scope.Caller, req dto.BulkMarkAttendanceRequest) (*dto.BulkMarkAttendanceResponse, error) {
	date, err := s.validateDate(req.Date)
	if err != nil {
		return nil, err
	}
	if len(req.Entries) == 0 {
		return nil, apperrors.NewValidationError("entries", "entries cannot be empty")
	}

	if _, err := s.subjects.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewNotFoundError("subject not found")
		}
		return nil, err
	}

	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionAttendance)
	if err != nil {
		return nil, err
	}

	markerID, err := s.markerFacultyID(ctx, caller)
	if err != nil {
		return nil, err
	}

	response := &dto.BulkMarkAttendanceResponse{
		Accepted: make([]int64, 0, len(req.Entries)),
		Rejected: []dto.BulkRejectedEntry{},
	}

	for _, entry := range req.Entries {
		if !entry.Status.Valid() {
			response.Rejected = append(response.Rejected, dto.BulkRejectedEntry{
				StudentID: entry.StudentID,
				Reason:    "status must be PRESENT or ABSENT",
			})
			continue
		}

		if err := s.checkStudentWritable(ctx, entry.StudentID, predicate); err != nil {
			response.Rejected = append(response.Rejected, dto.BulkRejectedEntry{
				StudentID: entry.StudentID,
				Reason:    err.Error(),
			})
			continue
		}

		record := &models.AttendanceRecord{
			StudentID: entry.StudentID,
			SubjectID: req.SubjectID,
			FacultyID: markerID,
			Date:      date,
			Status:    entry.Status,
		}
		if _, err := s.attendance.Upsert(ctx, record); err != nil {
			s.logger.Warn().Err(err).
				Int64("studentId", entry.StudentID).
				Int64("subjectId", req.SubjectID).
				Msg("Bulk attendance entry failed")
			response.Rejected = append(response.Rejected, dto.BulkRejectedEntry{
				StudentID: entry.StudentID,
				Reason:    "storage error, retry this entry",
			})
			continue
		}

		response.Accepted = append(response.Accepted, entry.StudentID)
	}

	return response, nil
}

// SubjectAttendance returns the roster for a subject and date, restricted
// to the caller's scope and ordered by roll number.
func (s *AttendanceService) SubjectAttendance(ctx context.Context, caller scope.Caller, subjectID int64, rawDate string) ([]*models.AttendanceRecord, error) {
	date, err := helpers.ParseDate(rawDate)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "date must use the YYYY-MM-DD format")
	}

	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewNotFoundError("subject not found")
		}
		return nil, err
	}

	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionAttendance)
	if err != nil {
		return nil, err
	}
	if predicate.Empty() {
		return nil, apperrors.NewForbiddenError("attendance read outside caller scope")
	}

	return s.attendance.ListBySubjectDate(ctx, subjectID, date, predicate)
}

// StudentHistory returns the calling student's own attendance records.
func (s *AttendanceService) StudentHistory(ctx context.Context, caller scope.Caller) ([]*models.AttendanceRecord, error) {
	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionAttendance)
	if err != nil {
		return nil, err
	}

	studentID, ok := predicate.StudentID()
	if !ok {
		return nil, apperrors.NewForbiddenError("attendance history is limited to the owning student")
	}

	return s.attendance.ListByStudent(ctx, studentID)
}

// validateDate parses a calendar day and rejects future dates. Attendance
// is a record of what happened, not a plan.
func (s *AttendanceService) validateDate(raw string) (time.Time, error) {
	date, err := helpers.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", "date must use the YYYY-MM-DD format")
	}
	if date.After(helpers.Today()) {
		return time.Time{}, apperrors.NewValidationError("date", "date cannot be in the future")
	}
	return date, nil
}

// checkStudentWritable verifies the target student exists, is admitted and
// falls inside the caller's scope. An out-of-scope target reads the same as
// a missing one.
func (s *AttendanceService) checkStudentWritable(ctx context.Context, studentID int64, predicate scope.Predicate) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.NewNotFoundError("student not found")
		}
		return err
	}

	if !predicate.AllowsStudent(student) {
		return apperrors.NewForbiddenError("student is outside the caller's scope")
	}
	if student.Status != models.ApprovalApproved {
		return apperrors.NewInvalidStateError("student admission is not approved")
	}
	return nil
}

// markerFacultyID resolves the faculty record to attribute a marking to.
// Admin markings carry no faculty attribution.
func (s *AttendanceService) markerFacultyID(ctx context.Context, caller scope.Caller) (*int64, error) {
	if caller.Role != models.RoleFaculty {
		return nil, nil
	}

	faculty, err := s.faculty.GetByAccountID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, apperrors.NewForbiddenError("caller has no faculty record")
		}
		return nil, err
	}
	return &faculty.ID, nil
}
