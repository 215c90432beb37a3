package dto

import (
	"time"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/pkg/helpers"
)

// MarkAttendanceRequest marks one student's attendance for a subject on a
// calendar day. Date uses the YYYY-MM-DD layout.
type MarkAttendanceRequest struct {
	StudentID int64                   `json:"studentId" binding:"required,gt=0"`
	SubjectID int64                   `json:"subjectId" binding:"required,gt=0"`
	Date      string                  `json:"date" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required"`
}

// BulkAttendanceEntry is one student's status inside a bulk marking request
type BulkAttendanceEntry struct {
	StudentID int64                   `json:"studentId" binding:"required,gt=0"`
	Status    models.AttendanceStatus `json:"status" binding:"required"`
}

// BulkMarkAttendanceRequest marks a whole class session in one call
type BulkMarkAttendanceRequest struct {
	SubjectID int64                 `json:"subjectId" binding:"required,gt=0"`
	Date      string                `json:"date" binding:"required"`
	Entries   []BulkAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// BulkRejectedEntry names a student whose entry was not applied and why
type BulkRejectedEntry struct {
	StudentID int64  `json:"studentId"`
	Reason    string `json:"reason"`
}

// BulkMarkAttendanceResponse reports the per-entry outcome of a bulk mark.
// Entries are independent: a rejected entry never rolls back an accepted one.
type BulkMarkAttendanceResponse struct {
	Accepted []int64             `json:"accepted"`
	Rejected []BulkRejectedEntry `json:"rejected"`
}

// AttendanceRecordResponse represents one attendance fact
type AttendanceRecordResponse struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"studentId"`
	SubjectID   int64  `json:"subjectId"`
	FacultyID   *int64 `json:"facultyId,omitempty"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	MarkedAt    string `json:"markedAt"`
	StudentRoll string `json:"studentRoll,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	SubjectCode string `json:"subjectCode,omitempty"`
}

// SubjectAttendanceResponse is the roster view for one subject and date
type SubjectAttendanceResponse struct {
	SubjectID int64                      `json:"subjectId"`
	Date      string                     `json:"date"`
	Records   []AttendanceRecordResponse `json:"records"`
}

// NewAttendanceRecordResponse maps an attendance record to its response
// shape
func NewAttendanceRecordResponse(record *models.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:          record.ID,
		StudentID:   record.StudentID,
		SubjectID:   record.SubjectID,
		FacultyID:   record.FacultyID,
		Date:        helpers.FormatDate(record.Date),
		Status:      string(record.Status),
		MarkedAt:    record.MarkedAt.Format(time.RFC3339),
		StudentRoll: record.StudentRoll,
		StudentName: record.StudentName,
		SubjectCode: record.SubjectCode,
	}
}

// NewAttendanceRecordListResponse maps a list of attendance records
func NewAttendanceRecordListResponse(records []*models.AttendanceRecord) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewAttendanceRecordResponse(record))
	}
	return out
}
