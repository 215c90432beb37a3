package dto

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	CourseID  int64  `json:"courseId" binding:"required,gt=0"`
	Semester  int    `json:"semester" binding:"required,gt=0"`
	Credits   int    `json:"credits" binding:"required,min=1,max=10"`
	FacultyID *int64 `json:"facultyId,omitempty" binding:"omitempty,gt=0"`
}

// UpdateSubjectRequest represents subject update data
type UpdateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Semester  int    `json:"semester" binding:"required,gt=0"`
	Credits   int    `json:"credits" binding:"required,min=1,max=10"`
	FacultyID *int64 `json:"facultyId,omitempty" binding:"omitempty,gt=0"`
}