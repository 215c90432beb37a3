package services

import (
	"context"
	"strings"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// DepartmentService handles department directory operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// validateDepartment validates department data before database operations
func validateDepartment(department *models.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("name", "name cannot be empty")
	}
	if !isValidDirectoryCode(department.Code) {
		return apperrors.NewValidationError("code", "code must be uppercase alphanumeric")
	}
	return nil
}

// isValidDirectoryCode checks a short directory code: uppercase letters and
// digits only.
func isValidDirectoryCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	department.Name = strings.TrimSpace(department.Name)
	department.Code = strings.TrimSpace(department.Code)
	if err := validateDepartment(department); err != nil {
		return err
	}
	return s.departmentRepo.Create(ctx, department)
}

// GetDepartmentByID retrieves a department by its ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	department.Name = strings.TrimSpace(department.Name)
	department.Code = strings.TrimSpace(department.Code)
	if err := validateDepartment(department); err != nil {
		return err
	}
	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department by its ID
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
