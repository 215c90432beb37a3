package dto

import (
	"time"

	"github.com/okaya/campusgate/internal/app/models"
)

// RecordResultRequest carries the marks for one (student, subject, semester)
// tuple. TotalMarks is optional; when supplied it must equal the recomputed
// sum of the components.
type RecordResultRequest struct {
	InternalMarks  int  `json:"internalMarks"`
	ExternalMarks  int  `json:"externalMarks"`
	PracticalMarks int  `json:"practicalMarks"`
	TotalMarks     *int `json:"totalMarks,omitempty"`
}

// ResultRecordResponse represents one recorded result
type ResultRecordResponse struct {
	ID             int64  `json:"id"`
	StudentID      int64  `json:"studentId"`
	SubjectID      int64  `json:"subjectId"`
	Semester       int    `json:"semester"`
	InternalMarks  int    `json:"internalMarks"`
	ExternalMarks  int    `json:"externalMarks"`
	PracticalMarks int    `json:"practicalMarks"`
	TotalMarks     int    `json:"totalMarks"`
	Grade          string `json:"grade"`
	RecordedAt     string `json:"recordedAt"`
	SubjectCode    string `json:"subjectCode,omitempty"`
	SubjectName    string `json:"subjectName,omitempty"`
}

// NewResultRecordResponse maps a result record to its response shape
func NewResultRecordResponse(record *models.ResultRecord) ResultRecordResponse {
	return ResultRecordResponse{
		ID:             record.ID,
		StudentID:      record.StudentID,
		SubjectID:      record.SubjectID,
		Semester:       record.Semester,
		InternalMarks:  record.InternalMarks,
		ExternalMarks:  record.ExternalMarks,
		PracticalMarks: record.PracticalMarks,
		TotalMarks:     record.TotalMarks,
		Grade:          string(record.Grade),
		RecordedAt:     record.RecordedAt.Format(time.RFC3339),
		SubjectCode:    record.SubjectCode,
		SubjectName:    record.SubjectName,
	}
}

// NewResultRecordListResponse maps a list of result records
func NewResultRecordListResponse(records []*models.ResultRecord) []ResultRecordResponse {
	out := make([]ResultRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewResultRecordResponse(record))
	}
	return out
}
