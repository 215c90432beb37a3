package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// SubjectService handles subject directory operations
type SubjectService struct {
	subjectRepo *repositories.SubjectRepository
	courseRepo  *repositories.CourseRepository
	facultyRepo *repositories.FacultyRepository
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(
	subjectRepo *repositories.SubjectRepository,
	courseRepo *repositories.CourseRepository,
	facultyRepo *repositories.FacultyRepository,
) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		courseRepo:  courseRepo,
		facultyRepo: facultyRepo,
	}
}

func (s *SubjectService) validateSubject(ctx context.Context, subject *models.Subject) error {
	if strings.TrimSpace(subject.Name) == "" {
		return apperrors.NewValidationError("name", "name cannot be empty")
	}
	if !isValidDirectoryCode(subject.Code) {
		return apperrors.NewValidationError("code", "code must be uppercase alphanumeric")
	}
	if subject.Credits < 1 || subject.Credits > 10 {
		return apperrors.NewValidationError("credits", "credits must be between 1 and 10")
	}

	course, err := s.courseRepo.GetByID(ctx, subject.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.NewValidationError("courseId", "course does not exist")
		}
		return err
	}
	if subject.Semester < 1 || subject.Semester > course.TotalSemesters {
		return apperrors.NewValidationError("semester",
			fmt.Sprintf("semester must be between 1 and %d for this course", course.TotalSemesters))
	}

	if subject.FacultyID != nil {
		if _, err := s.facultyRepo.GetByID(ctx, *subject.FacultyID); err != nil {
			if errors.Is(err, apperrors.ErrFacultyNotFound) {
				return apperrors.NewValidationError("facultyId", "faculty does not exist")
			}
			return err
		}
	}

	return nil
}

// CreateSubject creates a new subject under an existing course
func (s *SubjectService) CreateSubject(ctx context.Context, subject *models.Subject) error {
	subject.Name = strings.TrimSpace(subject.Name)
	subject.Code = strings.TrimSpace(subject.Code)
	if err := s.validateSubject(ctx, subject); err != nil {
		return err
	}
	return s.subjectRepo.Create(ctx, subject)
}

// GetSubjectByID retrieves a subject by its ID
func (s *SubjectService) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// GetAllSubjects retrieves subjects, optionally filtered by course and
// semester
func (s *SubjectService) GetAllSubjects(ctx context.Context, courseID int64, semester int) ([]*models.Subject, error) {
	return s.subjectRepo.GetAll(ctx, courseID, semester)
}

// UpdateSubject updates an existing subject
func (s *SubjectService) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	subject.Name = strings.TrimSpace(subject.Name)
	subject.Code = strings.TrimSpace(subject.Code)

	existing, err := s.subjectRepo.GetByID(ctx, subject.ID)
	if err != nil {
		return err
	}
	subject.CourseID = existing.CourseID

	if err := s.validateSubject(ctx, subject); err != nil {
		return err
	}
	return s.subjectRepo.Update(ctx, subject)
}

// DeleteSubject deletes a subject by its ID
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjectRepo.Delete(ctx, id)
}
