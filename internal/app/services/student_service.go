package services

import (
	"context"
	"errors"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// StudentService handles scoped reads of the student directory
type StudentService struct {
	studentRepo *repositories.StudentRepository
	scopes      ScopeResolver
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, scopes ScopeResolver) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		scopes:      scopes,
	}
}

// ListStudents returns students visible under the caller's scope, ordered
// by roll number.
func (s *StudentService) ListStudents(ctx context.Context, caller scope.Caller) ([]*models.Student, error) {
	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionStudents)
	if err != nil {
		return nil, err
	}

	return s.studentRepo.List(ctx, predicate)
}

// GetStudent returns one student if the caller's scope covers it. A
// non-admin caller gets the same Forbidden answer whether the record is
// outside scope or absent.
func (s *StudentService) GetStudent(ctx context.Context, caller scope.Caller, id int64) (*models.Student, error) {
	predicate, err := s.scopes.Scope(ctx, caller, scope.CollectionStudents)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			if predicate.Unrestricted() {
				return nil, apperrors.NewNotFoundError("student not found")
			}
			return nil, apperrors.NewForbiddenError("student is outside the caller's scope")
		}
		return nil, err
	}

	if !predicate.AllowsStudent(student) {
		return nil, apperrors.NewForbiddenError("student is outside the caller's scope")
	}

	return student, nil
}

// OwnRecord returns the calling student's own directory record.
func (s *StudentService) OwnRecord(ctx context.Context, caller scope.Caller) (*models.Student, error) {
	student, err := s.studentRepo.GetByAccountID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundError("no student record for this account")
		}
		return nil, err
	}
	return student, nil
}
