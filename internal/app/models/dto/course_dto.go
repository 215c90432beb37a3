package dto

import "github.com/okaya/campusgate/internal/app/models"

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name           string            `json:"name" binding:"required"`
	Code           string            `json:"code" binding:"required"`
	DepartmentID   int64             `json:"departmentId" binding:"required,gt=0"`
	TotalSemesters int               `json:"totalSemesters" binding:"required,min=1,max=12"`
	Type           models.CourseType `json:"type" binding:"required"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name           string            `json:"name" binding:"required"`
	Code           string            `json:"code" binding:"required"`
	TotalSemesters int               `json:"totalSemesters" binding:"required,min=1,max=12"`
	Type           models.CourseType `json:"type" binding:"required"`
}