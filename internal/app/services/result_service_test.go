package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/config"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

type fakeResultStore struct {
	records map[string]*models.ResultRecord
}

func resultKey(record *models.ResultRecord) string {
	return fmt.Sprintf("%d/%d/%d", record.StudentID, record.SubjectID, record.Semester)
}

func (f *fakeResultStore) Upsert(ctx context.Context, record *models.ResultRecord) error {
	record.ID = int64(len(f.records) + 1)
	f.records[resultKey(record)] = record
	return nil
}

func (f *fakeResultStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.ResultRecord, error) {
	var out []*models.ResultRecord
	for _, record := range f.records {
		if record.StudentID == studentID {
			out = append(out, record)
		}
	}
	return out, nil
}

type resultFixture struct {
	service *ResultService
	store   *fakeResultStore
}

func newResultFixture() *resultFixture {
	csDept := int64(1)
	courseID := int64(2)
	otherCourse := int64(3)

	students := &fakeStudentReader{
		students: map[int64]*models.Student{
			10: {ID: 10, AccountID: 100, DepartmentID: &csDept, CourseID: &courseID, Status: models.ApprovalApproved},
			12: {ID: 12, AccountID: 102, Status: models.ApprovalPending},
			14: {ID: 14, AccountID: 104, DepartmentID: &csDept, CourseID: &otherCourse, Status: models.ApprovalApproved},
		},
		byAccount: map[int64]*models.Student{
			100: {ID: 10, AccountID: 100, DepartmentID: &csDept, CourseID: &courseID, Status: models.ApprovalApproved},
		},
	}
	faculty := &fakeFacultyReader{
		byAccount: map[int64]*models.Faculty{
			50: {ID: 5, AccountID: 50, DepartmentID: csDept},
		},
	}
	subjects := &fakeSubjectStore{
		subjects: map[int64]*models.Subject{
			9: {ID: 9, Code: "CS301", CourseID: courseID, Semester: 3},
		},
	}
	store := &fakeResultStore{records: map[string]*models.ResultRecord{}}
	resolver := scope.NewResolver(faculty, students)
	settings := config.NewSettings("testdata/config.yaml", config.DefaultGrading())

	return &resultFixture{
		service: NewResultService(store, subjects, students, resolver, settings, zerolog.Nop()),
		store:   store,
	}
}

func validResultRequest() dto.RecordResultRequest {
	return dto.RecordResultRequest{InternalMarks: 45, ExternalMarks: 80, PracticalMarks: 40}
}

func TestRecordComputesTotalAndGrade(t *testing.T) {
	fix := newResultFixture()

	record, err := fix.service.Record(context.Background(), facultyCaller, 10, 9, 3, validResultRequest())
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if record.TotalMarks != 165 {
		t.Errorf("TotalMarks = %d, want 165", record.TotalMarks)
	}
	// 165/200 = 82.5%
	if record.Grade != models.GradeA {
		t.Errorf("Grade = %s, want A", record.Grade)
	}
}

func TestRecordOverwritesSameTuple(t *testing.T) {
	fix := newResultFixture()

	if _, err := fix.service.Record(context.Background(), adminCaller, 10, 9, 3, validResultRequest()); err != nil {
		t.Fatalf("first Record returned error: %v", err)
	}

	corrected := dto.RecordResultRequest{InternalMarks: 20, ExternalMarks: 40, PracticalMarks: 10}
	record, err := fix.service.Record(context.Background(), adminCaller, 10, 9, 3, corrected)
	if err != nil {
		t.Fatalf("correcting Record returned error: %v", err)
	}

	if len(fix.store.records) != 1 {
		t.Errorf("store holds %d records, want 1 (corrected in place)", len(fix.store.records))
	}
	if record.TotalMarks != 70 {
		t.Errorf("TotalMarks = %d, want recomputed 70", record.TotalMarks)
	}
	// 70/200 = 35%
	if record.Grade != models.GradeD {
		t.Errorf("Grade = %s, want D", record.Grade)
	}
}

func TestRecordTotalCrossCheck(t *testing.T) {
	fix := newResultFixture()

	wrong := 100
	req := validResultRequest()
	req.TotalMarks = &wrong

	_, err := fix.service.Record(context.Background(), adminCaller, 10, 9, 3, req)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}

	right := 165
	req.TotalMarks = &right
	if _, err := fix.service.Record(context.Background(), adminCaller, 10, 9, 3, req); err != nil {
		t.Errorf("Record with matching total returned error: %v", err)
	}
}

func TestRecordValidation(t *testing.T) {
	tests := []struct {
		name      string
		studentID int64
		subjectID int64
		semester  int
		mutate    func(*dto.RecordResultRequest)
		wantErr   error
	}{
		{"internal marks above bound", 10, 9, 3, func(r *dto.RecordResultRequest) { r.InternalMarks = 51 }, apperrors.ErrValidation},
		{"external marks negative", 10, 9, 3, func(r *dto.RecordResultRequest) { r.ExternalMarks = -1 }, apperrors.ErrValidation},
		{"practical marks above bound", 10, 9, 3, func(r *dto.RecordResultRequest) { r.PracticalMarks = 51 }, apperrors.ErrValidation},
		{"semester out of range", 10, 9, 9, nil, apperrors.ErrValidation},
		{"semester mismatching subject", 10, 9, 4, nil, apperrors.ErrValidation},
		{"unknown subject", 10, 99, 3, nil, apperrors.ErrNotFound},
		{"unknown student", 99, 9, 3, nil, apperrors.ErrNotFound},
		{"pending student", 12, 9, 3, nil, apperrors.ErrInvalidState},
		{"subject of another course", 14, 9, 3, nil, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newResultFixture()
			req := validResultRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			_, err := fix.service.Record(context.Background(), adminCaller, tt.studentID, tt.subjectID, tt.semester, req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(fix.store.records) != 0 {
				t.Error("invalid result reached the store")
			}
		})
	}
}

func TestRecordScopeEnforced(t *testing.T) {
	fix := newResultFixture()

	// A student caller resolves to an own-record scope which never covers
	// result writes for grading.
	studentCaller := scope.Caller{AccountID: 102, Role: models.RoleStudent}
	_, err := fix.service.Record(context.Background(), studentCaller, 10, 9, 3, validResultRequest())
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestStudentResultsOwnRecordsOnly(t *testing.T) {
	fix := newResultFixture()
	if _, err := fix.service.Record(context.Background(), adminCaller, 10, 9, 3, validResultRequest()); err != nil {
		t.Fatalf("seeding result failed: %v", err)
	}

	studentCaller := scope.Caller{AccountID: 100, Role: models.RoleStudent}
	records, err := fix.service.StudentResults(context.Background(), studentCaller)
	if err != nil {
		t.Fatalf("StudentResults returned error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}

	_, err = fix.service.StudentResults(context.Background(), facultyCaller)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("faculty results: error = %v, want forbidden", err)
	}
}
