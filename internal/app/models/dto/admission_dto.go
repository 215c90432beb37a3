package dto

// ApproveAdmissionRequest carries the placement an approved applicant
// receives. All fields are mandatory; approval without a full placement is
// rejected before touching the database.
type ApproveAdmissionRequest struct {
	DepartmentID     int64  `json:"departmentId" binding:"required,gt=0"`
	CourseID         int64  `json:"courseId" binding:"required,gt=0"`
	Semester         int    `json:"semester" binding:"required,gt=0"`
	EnrollmentNumber string `json:"enrollmentNumber" binding:"required"`
	RollNumber       string `json:"rollNumber" binding:"required"`
}

// RejectAdmissionRequest carries the reason recorded with a rejection
type RejectAdmissionRequest struct {
	Reason string `json:"reason" binding:"required"`
}
