package models

// Department defines the department model based on the 'departments' table
type Department struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Name      string `json:"name" db:"name" example:"Computer Science"`
	Code      string `json:"code" db:"code" example:"CS"`
	HeadID    *int64 `json:"headId,omitempty" db:"head_id"` // Head of department (faculty), nullable
	HeadName  string `json:"headName,omitempty" db:"-"`     // Populated on detail reads
}
