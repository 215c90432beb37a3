package dto

// FacultyResponse represents basic faculty information
type FacultyResponse struct {
	ID           int64   `json:"id"`
	AccountID    int64   `json:"accountId"`
	Email        string  `json:"email"`
	FullName     string  `json:"fullName"`
	DepartmentID int64   `json:"departmentId"`
	Designation  string  `json:"designation"`
	SubjectIDs   []int64 `json:"subjectIds,omitempty"`
}

// CreateFacultyRequest provisions a faculty member with their account
type CreateFacultyRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName" binding:"required"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	Designation  string `json:"designation" binding:"required"`
}

// UpdateFacultyRequest represents faculty update data
type UpdateFacultyRequest struct {
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	Designation  string `json:"designation" binding:"required"`
}

// FacultyListResponse represents a list of faculty members
type FacultyListResponse struct {
	Faculty []FacultyResponse `json:"faculty"`
}
