package dto

import "github.com/okaya/campusgate/internal/app/models"

// StudentResponse represents basic student information
type StudentResponse struct {
	ID               int64   `json:"id"`
	AccountID        int64   `json:"accountId"`
	Email            string  `json:"email"`
	FullName         string  `json:"fullName"`
	DepartmentID     *int64  `json:"departmentId,omitempty"`
	CourseID         *int64  `json:"courseId,omitempty"`
	Semester         *int    `json:"semester,omitempty"`
	EnrollmentNumber *string `json:"enrollmentNumber,omitempty"`
	RollNumber       *string `json:"rollNumber,omitempty"`
	AdmissionYear    int     `json:"admissionYear"`
	Status           string  `json:"status"`
	RejectionReason  *string `json:"rejectionReason,omitempty"`
}

// StudentListResponse represents a list of students
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
}

// NewStudentResponse maps a student record to its response shape
func NewStudentResponse(student *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:               student.ID,
		AccountID:        student.AccountID,
		DepartmentID:     student.DepartmentID,
		CourseID:         student.CourseID,
		Semester:         student.Semester,
		EnrollmentNumber: student.EnrollmentNumber,
		RollNumber:       student.RollNumber,
		AdmissionYear:    student.AdmissionYear,
		Status:           string(student.Status),
		RejectionReason:  student.RejectionReason,
	}
	if student.Account != nil {
		resp.Email = student.Account.Email
		resp.FullName = student.Account.FullName
	}
	return resp
}

// NewStudentListResponse maps a list of student records
func NewStudentListResponse(students []*models.Student) StudentListResponse {
	resp := StudentListResponse{Students: make([]StudentResponse, 0, len(students))}
	for _, student := range students {
		resp.Students = append(resp.Students, NewStudentResponse(student))
	}
	return resp
}
