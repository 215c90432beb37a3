package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// AdmissionStudentStore is the slice of the student repository the admission
// workflow needs.
type AdmissionStudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ListPending(ctx context.Context) ([]*models.Student, error)
	Approve(ctx context.Context, id int64, assignment models.AdmissionAssignment) (*models.Student, error)
	Reject(ctx context.Context, id int64, reason string) (*models.Student, error)
}

// DepartmentStore resolves departments referenced by a placement.
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// CourseStore resolves courses referenced by a placement.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// AdmissionService handles the admission decision workflow. Every applicant
// starts PENDING; an administrator moves it exactly once to APPROVED with a
// full placement or to REJECTED with a reason.
type AdmissionService struct {
	students    AdmissionStudentStore
	departments DepartmentStore
	courses     CourseStore
	logger      zerolog.Logger
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(students AdmissionStudentStore, departments DepartmentStore, courses CourseStore, logger zerolog.Logger) *AdmissionService {
	return &AdmissionService{
		students:    students,
		departments: departments,
		courses:     courses,
		logger:      logger,
	}
}

// ListPending returns all students awaiting a decision, oldest first.
func (s *AdmissionService) ListPending(ctx context.Context, caller scope.Caller) ([]*models.Student, error) {
	if caller.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("admission decisions require the admin role")
	}
	return s.students.ListPending(ctx)
}

// Approve transitions a pending applicant to APPROVED with the given
// placement. The transition is atomic: concurrent decisions on the same
// applicant resolve to exactly one winner, and the loser observes the state
// the winner left behind.
func (s *AdmissionService) Approve(ctx context.Context, caller scope.Caller, studentID int64, req dto.ApproveAdmissionRequest) (*models.Student, error) {
	if caller.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("admission decisions require the admin role")
	}

	assignment, err := s.validatePlacement(ctx, req)
	if err != nil {
		return nil, err
	}

	student, err := s.students.Approve(ctx, studentID, assignment)
	if err != nil {
		if errors.Is(err, repositories.ErrNoPendingStudent) {
			return nil, s.decisionStateError(ctx, studentID)
		}
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Str("enrollmentNumber", assignment.EnrollmentNumber).
		Int64("adminAccountId", caller.AccountID).
		Msg("Admission approved")

	return student, nil
}

// Reject transitions a pending applicant to REJECTED, recording the reason.
func (s *AdmissionService) Reject(ctx context.Context, caller scope.Caller, studentID int64, reason string) (*models.Student, error) {
	if caller.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("admission decisions require the admin role")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason", "rejection reason cannot be empty")
	}

	student, err := s.students.Reject(ctx, studentID, reason)
	if err != nil {
		if errors.Is(err, repositories.ErrNoPendingStudent) {
			return nil, s.decisionStateError(ctx, studentID)
		}
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Int64("adminAccountId", caller.AccountID).
		Msg("Admission rejected")

	return student, nil
}

// validatePlacement checks the placement references and bounds before any
// write. The course must belong to the named department and the semester
// must exist within the course.
func (s *AdmissionService) validatePlacement(ctx context.Context, req dto.ApproveAdmissionRequest) (models.AdmissionAssignment, error) {
	var assignment models.AdmissionAssignment

	enrollment := strings.TrimSpace(req.EnrollmentNumber)
	if enrollment == "" {
		return assignment, apperrors.NewValidationError("enrollmentNumber", "enrollment number cannot be empty")
	}
	roll := strings.TrimSpace(req.RollNumber)
	if roll == "" {
		return assignment, apperrors.NewValidationError("rollNumber", "roll number cannot be empty")
	}

	if req.Semester < models.MinSemester || req.Semester > models.MaxSemester {
		return assignment, apperrors.NewValidationError("semester",
			fmt.Sprintf("semester must be between %d and %d", models.MinSemester, models.MaxSemester))
	}

	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return assignment, apperrors.NewValidationError("departmentId", "department does not exist")
		}
		return assignment, err
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return assignment, apperrors.NewValidationError("courseId", "course does not exist")
		}
		return assignment, err
	}

	if course.DepartmentID != req.DepartmentID {
		return assignment, apperrors.NewValidationError("courseId", "course does not belong to the given department")
	}
	if req.Semester > course.TotalSemesters {
		return assignment, apperrors.NewValidationError("semester",
			fmt.Sprintf("course has only %d semesters", course.TotalSemesters))
	}

	assignment = models.AdmissionAssignment{
		DepartmentID:     req.DepartmentID,
		CourseID:         req.CourseID,
		Semester:         req.Semester,
		EnrollmentNumber: enrollment,
		RollNumber:       roll,
	}
	return assignment, nil
}

// decisionStateError distinguishes a missing applicant from one already
// decided, after a status-guarded update matched no row.
func (s *AdmissionService) decisionStateError(ctx context.Context, studentID int64) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.NewNotFoundError("student not found")
		}
		return err
	}
	return apperrors.NewInvalidStateError(
		fmt.Sprintf("admission already decided: status is %s", student.Status))
}
