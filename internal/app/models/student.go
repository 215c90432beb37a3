package models

import "time"

// Student defines the student model based on the 'students' table.
//
// A student starts PENDING with no department, course, semester, enrollment
// number or roll number; those are assigned atomically when an admin
// approves the admission. They stay NULL on rejected records.
type Student struct {
	ID               int64          `json:"id" db:"id" example:"1"`
	AccountID        int64          `json:"accountId" db:"account_id" example:"7"`
	DepartmentID     *int64         `json:"departmentId,omitempty" db:"department_id"`
	CourseID         *int64         `json:"courseId,omitempty" db:"course_id"`
	Semester         *int           `json:"semester,omitempty" db:"semester"`
	EnrollmentNumber *string        `json:"enrollmentNumber,omitempty" db:"enrollment_number"`
	RollNumber       *string        `json:"rollNumber,omitempty" db:"roll_number"`
	AdmissionYear    int            `json:"admissionYear" db:"admission_year" example:"2024"`
	Status           ApprovalStatus `json:"status" db:"status" example:"PENDING"`
	RejectionReason  *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`

	Account    *Account    `json:"account,omitempty"`    // Relation, no db tag
	Department *Department `json:"department,omitempty"` // Relation, no db tag
	Course     *Course     `json:"course,omitempty"`     // Relation, no db tag
}

// AdmissionAssignment carries the fields an admin assigns when approving a
// pending student. All are set atomically with the state transition.
type AdmissionAssignment struct {
	DepartmentID     int64
	CourseID         int64
	Semester         int
	EnrollmentNumber string
	RollNumber       string
}

