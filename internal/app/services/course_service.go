package services

import (
	"context"
	"errors"
	"strings"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// CourseService handles course directory operations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, departmentRepo *repositories.DepartmentRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
	}
}

func validateCourse(course *models.Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return apperrors.NewValidationError("name", "name cannot be empty")
	}
	if !isValidDirectoryCode(course.Code) {
		return apperrors.NewValidationError("code", "code must be uppercase alphanumeric")
	}
	if !course.Type.Valid() {
		return apperrors.NewValidationError("type", "type must be UG, PG or DIPLOMA")
	}
	if course.TotalSemesters < 1 || course.TotalSemesters > 12 {
		return apperrors.NewValidationError("totalSemesters", "total semesters must be between 1 and 12")
	}
	return nil
}

// CreateCourse creates a new course under an existing department
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	course.Name = strings.TrimSpace(course.Name)
	course.Code = strings.TrimSpace(course.Code)
	if err := validateCourse(course); err != nil {
		return err
	}

	if _, err := s.departmentRepo.GetByID(ctx, course.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return apperrors.NewValidationError("departmentId", "department does not exist")
		}
		return err
	}

	return s.courseRepo.Create(ctx, course)
}

// GetCourseByID retrieves a course by its ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses retrieves courses, optionally filtered by department
func (s *CourseService) GetAllCourses(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx, departmentID)
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	course.Name = strings.TrimSpace(course.Name)
	course.Code = strings.TrimSpace(course.Code)
	if err := validateCourse(course); err != nil {
		return err
	}
	return s.courseRepo.Update(ctx, course)
}

// DeleteCourse deletes a course by its ID
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
