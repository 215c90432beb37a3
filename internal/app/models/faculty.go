package models

// Faculty defines the faculty model based on the 'faculty' table. The
// department reference is what the access scoping layer resolves a faculty
// caller's visibility from.
type Faculty struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	AccountID    int64  `json:"accountId" db:"account_id" example:"5"`
	DepartmentID int64  `json:"departmentId" db:"department_id" example:"1"`
	Designation  string `json:"designation" db:"designation" example:"Assistant Professor"`

	Account    *Account    `json:"account,omitempty"`    // Relation, no db tag
	Department *Department `json:"department,omitempty"` // Relation, no db tag
	SubjectIDs []int64     `json:"subjectIds,omitempty"` // Assigned subjects, populated on detail reads
}
