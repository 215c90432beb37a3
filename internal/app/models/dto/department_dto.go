package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	HeadID *int64 `json:"headId,omitempty" binding:"omitempty,gt=0"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	HeadID *int64 `json:"headId,omitempty" binding:"omitempty,gt=0"`
}