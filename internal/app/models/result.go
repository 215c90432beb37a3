package models

import "time"

// Marks bounds for a result record.
const (
	MaxInternalMarks  = 50
	MaxExternalMarks  = 100
	MaxPracticalMarks = 50
	MaxTotalMarks     = MaxInternalMarks + MaxExternalMarks + MaxPracticalMarks
)

// ResultRecord defines one result based on the 'results' table. The tuple
// (student, subject, semester) is unique; re-filing corrects the record in
// place. TotalMarks is always the recomputed sum of the three components
// and Grade is a deterministic function of it.
type ResultRecord struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	StudentID      int64     `json:"studentId" db:"student_id" example:"3"`
	SubjectID      int64     `json:"subjectId" db:"subject_id" example:"9"`
	Semester       int       `json:"semester" db:"semester" example:"3"`
	InternalMarks  int       `json:"internalMarks" db:"internal_marks" example:"45"`
	ExternalMarks  int       `json:"externalMarks" db:"external_marks" example:"80"`
	PracticalMarks int       `json:"practicalMarks" db:"practical_marks" example:"40"`
	TotalMarks     int       `json:"totalMarks" db:"total_marks" example:"165"`
	Grade          Grade     `json:"grade" db:"grade" example:"A"`
	RecordedAt     time.Time `json:"recordedAt" db:"recorded_at"`

	SubjectCode string `json:"subjectCode,omitempty" db:"-"` // Populated on list reads
	SubjectName string `json:"subjectName,omitempty" db:"-"` // Populated on list reads
}
