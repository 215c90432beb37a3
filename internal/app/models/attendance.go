package models

import "time"

// AttendanceRecord defines one attendance fact based on the 'attendance'
// table. The tuple (student, subject, date) is unique; re-marking the same
// tuple overwrites the status and the marking faculty rather than
// accumulating duplicates.
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id" example:"1"`
	StudentID int64            `json:"studentId" db:"student_id" example:"3"`
	SubjectID int64            `json:"subjectId" db:"subject_id" example:"9"`
	FacultyID *int64           `json:"facultyId,omitempty" db:"faculty_id"` // Marking faculty, NULL when marked by an admin
	Date      time.Time        `json:"date" db:"date"`                      // Calendar day, no time component
	Status    AttendanceStatus `json:"status" db:"status" example:"PRESENT"`
	MarkedAt  time.Time        `json:"markedAt" db:"marked_at"`

	StudentRoll string `json:"studentRoll,omitempty" db:"-"` // Populated on roster reads
	StudentName string `json:"studentName,omitempty" db:"-"` // Populated on roster reads
	SubjectCode string `json:"subjectCode,omitempty" db:"-"` // Populated on student history reads
}
