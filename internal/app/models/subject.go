package models

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Name      string `json:"name" db:"name" example:"Operating Systems"`
	Code      string `json:"code" db:"code" example:"CS301"`
	CourseID  int64  `json:"courseId" db:"course_id" example:"1"`
	Semester  int    `json:"semester" db:"semester" example:"3"`
	Credits   int    `json:"credits" db:"credits" example:"4"`
	FacultyID *int64 `json:"facultyId,omitempty" db:"faculty_id"` // Assigned faculty, nullable

	Course *Course `json:"course,omitempty"` // Relation, no db tag
}
