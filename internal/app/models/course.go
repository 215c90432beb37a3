package models

// Course defines the course model based on the 'courses' table
type Course struct {
	ID             int64      `json:"id" db:"id" example:"1"`
	Name           string     `json:"name" db:"name" example:"BTech Computer Science"`
	Code           string     `json:"code" db:"code" example:"BTECH-CS"`
	DepartmentID   int64      `json:"departmentId" db:"department_id" example:"1"`
	TotalSemesters int        `json:"totalSemesters" db:"total_semesters" example:"8"`
	Type           CourseType `json:"type" db:"type" example:"UG"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
}
