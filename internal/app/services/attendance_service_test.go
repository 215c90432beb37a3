package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

type fakeSubjectStore struct {
	subjects map[int64]*models.Subject
}

func (f *fakeSubjectStore) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

type fakeStudentReader struct {
	students  map[int64]*models.Student
	byAccount map[int64]*models.Student
}

func (f *fakeStudentReader) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudentReader) GetByAccountID(ctx context.Context, accountID int64) (*models.Student, error) {
	student, ok := f.byAccount[accountID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type fakeFacultyReader struct {
	byAccount map[int64]*models.Faculty
}

func (f *fakeFacultyReader) GetByAccountID(ctx context.Context, accountID int64) (*models.Faculty, error) {
	faculty, ok := f.byAccount[accountID]
	if !ok {
		return nil, apperrors.ErrFacultyNotFound
	}
	return faculty, nil
}

type fakeAttendanceStore struct {
	records     map[string]*models.AttendanceRecord
	failStudent int64 // Upsert for this student returns an error
}

func attendanceKey(studentID, subjectID int64, date time.Time) string {
	return fmt.Sprintf("%d/%d/%s", studentID, subjectID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceStore) Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	if record.StudentID == f.failStudent {
		return false, errors.New("storage timeout")
	}
	key := attendanceKey(record.StudentID, record.SubjectID, record.Date)
	_, existed := f.records[key]
	record.ID = int64(len(f.records) + 1)
	record.MarkedAt = time.Now()
	f.records[key] = record
	return !existed, nil
}

func (f *fakeAttendanceStore) ListBySubjectDate(ctx context.Context, subjectID int64, date time.Time, predicate scope.Predicate) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, record := range f.records {
		if record.SubjectID == subjectID && record.Date.Equal(date) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, record := range f.records {
		if record.StudentID == studentID {
			out = append(out, record)
		}
	}
	return out, nil
}

// attendanceFixture wires an AttendanceService over in-memory stores with a
// real scope resolver, so predicates behave exactly as in production.
type attendanceFixture struct {
	service *AttendanceService
	store   *fakeAttendanceStore
}

func newAttendanceFixture() *attendanceFixture {
	csDept := int64(1)
	otherDept := int64(2)

	students := &fakeStudentReader{
		students: map[int64]*models.Student{
			10: {ID: 10, AccountID: 100, DepartmentID: &csDept, Status: models.ApprovalApproved},
			11: {ID: 11, AccountID: 101, DepartmentID: &csDept, Status: models.ApprovalApproved},
			12: {ID: 12, AccountID: 102, Status: models.ApprovalPending},
			13: {ID: 13, AccountID: 103, DepartmentID: &otherDept, Status: models.ApprovalApproved},
		},
		byAccount: map[int64]*models.Student{
			100: {ID: 10, AccountID: 100, DepartmentID: &csDept, Status: models.ApprovalApproved},
		},
	}
	faculty := &fakeFacultyReader{
		byAccount: map[int64]*models.Faculty{
			50: {ID: 5, AccountID: 50, DepartmentID: csDept},
		},
	}
	subjects := &fakeSubjectStore{
		subjects: map[int64]*models.Subject{
			9: {ID: 9, Code: "CS301", CourseID: 2, Semester: 3},
		},
	}
	store := &fakeAttendanceStore{records: map[string]*models.AttendanceRecord{}}
	resolver := scope.NewResolver(faculty, students)

	return &attendanceFixture{
		service: NewAttendanceService(store, subjects, students, faculty, resolver, zerolog.Nop()),
		store:   store,
	}
}

var facultyCaller = scope.Caller{AccountID: 50, Role: models.RoleFaculty}

func yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
}

func TestMarkOneCreatesThenOverwrites(t *testing.T) {
	fix := newAttendanceFixture()
	req := dto.MarkAttendanceRequest{StudentID: 10, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent}

	record, created, err := fix.service.MarkOne(context.Background(), facultyCaller, req)
	if err != nil {
		t.Fatalf("MarkOne returned error: %v", err)
	}
	if !created {
		t.Error("first marking reported created=false")
	}
	if record.FacultyID == nil || *record.FacultyID != 5 {
		t.Errorf("FacultyID = %v, want attribution to faculty 5", record.FacultyID)
	}

	req.Status = models.AttendanceAbsent
	record, created, err = fix.service.MarkOne(context.Background(), facultyCaller, req)
	if err != nil {
		t.Fatalf("re-marking returned error: %v", err)
	}
	if created {
		t.Error("re-marking reported created=true")
	}
	if record.Status != models.AttendanceAbsent {
		t.Errorf("status = %s, want overwritten to ABSENT", record.Status)
	}
	if len(fix.store.records) != 1 {
		t.Errorf("store holds %d records, want 1 (no duplicates)", len(fix.store.records))
	}
}

func TestMarkOneAdminCarriesNoAttribution(t *testing.T) {
	fix := newAttendanceFixture()
	req := dto.MarkAttendanceRequest{StudentID: 13, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent}

	record, _, err := fix.service.MarkOne(context.Background(), adminCaller, req)
	if err != nil {
		t.Fatalf("MarkOne returned error: %v", err)
	}
	if record.FacultyID != nil {
		t.Errorf("FacultyID = %v, want nil for admin marking", record.FacultyID)
	}
}

func TestMarkOneValidation(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	tests := []struct {
		name    string
		req     dto.MarkAttendanceRequest
		wantErr error
	}{
		{
			"malformed date",
			dto.MarkAttendanceRequest{StudentID: 10, SubjectID: 9, Date: "31-12-2025", Status: models.AttendancePresent},
			apperrors.ErrValidation,
		},
		{
			"future date",
			dto.MarkAttendanceRequest{StudentID: 10, SubjectID: 9, Date: tomorrow, Status: models.AttendancePresent},
			apperrors.ErrValidation,
		},
		{
			"unknown status",
			dto.MarkAttendanceRequest{StudentID: 10, SubjectID: 9, Date: yesterday(), Status: "LATE"},
			apperrors.ErrValidation,
		},
		{
			"unknown subject",
			dto.MarkAttendanceRequest{StudentID: 10, SubjectID: 99, Date: yesterday(), Status: models.AttendancePresent},
			apperrors.ErrNotFound,
		},
		{
			"unknown student",
			dto.MarkAttendanceRequest{StudentID: 99, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent},
			apperrors.ErrNotFound,
		},
		{
			"pending student",
			dto.MarkAttendanceRequest{StudentID: 12, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent},
			apperrors.ErrForbidden, // pending students have no department, so faculty scope excludes them
		},
		{
			"student of another department",
			dto.MarkAttendanceRequest{StudentID: 13, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent},
			apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newAttendanceFixture()
			_, _, err := fix.service.MarkOne(context.Background(), facultyCaller, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(fix.store.records) != 0 {
				t.Error("invalid marking reached the store")
			}
		})
	}
}

func TestMarkOnePendingStudentAsAdmin(t *testing.T) {
	fix := newAttendanceFixture()
	req := dto.MarkAttendanceRequest{StudentID: 12, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent}

	// Admin scope covers the pending student, so the admission state is
	// what rejects the write.
	_, _, err := fix.service.MarkOne(context.Background(), adminCaller, req)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("error = %v, want invalid state", err)
	}
}

func TestMarkBulkIsolatesEntries(t *testing.T) {
	fix := newAttendanceFixture()
	fix.store.failStudent = 11

	req := dto.BulkMarkAttendanceRequest{
		SubjectID: 9,
		Date:      yesterday(),
		Entries: []dto.BulkAttendanceEntry{
			{StudentID: 10, Status: models.AttendancePresent}, // fine
			{StudentID: 11, Status: models.AttendancePresent}, // storage failure
			{StudentID: 12, Status: models.AttendancePresent}, // out of faculty scope
			{StudentID: 99, Status: models.AttendancePresent}, // unknown
			{StudentID: 10, Status: "LATE"},                   // bad status
		},
	}

	resp, err := fix.service.MarkBulk(context.Background(), facultyCaller, req)
	if err != nil {
		t.Fatalf("MarkBulk returned error: %v", err)
	}

	if len(resp.Accepted) != 1 || resp.Accepted[0] != 10 {
		t.Errorf("Accepted = %v, want [10]", resp.Accepted)
	}
	if len(resp.Rejected) != 4 {
		t.Fatalf("len(Rejected) = %d, want 4", len(resp.Rejected))
	}
	for _, rejected := range resp.Rejected {
		if rejected.Reason == "" {
			t.Errorf("rejected entry for student %d has no reason", rejected.StudentID)
		}
	}
	if len(fix.store.records) != 1 {
		t.Errorf("store holds %d records, want only the accepted entry", len(fix.store.records))
	}
}

func TestMarkBulkBadSessionFailsWhole(t *testing.T) {
	fix := newAttendanceFixture()
	req := dto.BulkMarkAttendanceRequest{
		SubjectID: 99,
		Date:      yesterday(),
		Entries:   []dto.BulkAttendanceEntry{{StudentID: 10, Status: models.AttendancePresent}},
	}

	_, err := fix.service.MarkBulk(context.Background(), facultyCaller, req)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want not found for the shared subject", err)
	}
}

func TestSubjectAttendanceOutsideScope(t *testing.T) {
	fix := newAttendanceFixture()

	// Faculty account with no faculty record resolves to a deny-all scope.
	orphan := scope.Caller{AccountID: 999, Role: models.RoleFaculty}
	_, err := fix.service.SubjectAttendance(context.Background(), orphan, 9, yesterday())
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestStudentHistoryOwnRecordsOnly(t *testing.T) {
	fix := newAttendanceFixture()
	mark := dto.MarkAttendanceRequest{StudentID: 10, SubjectID: 9, Date: yesterday(), Status: models.AttendancePresent}
	if _, _, err := fix.service.MarkOne(context.Background(), adminCaller, mark); err != nil {
		t.Fatalf("seeding record failed: %v", err)
	}

	studentCaller := scope.Caller{AccountID: 100, Role: models.RoleStudent}
	records, err := fix.service.StudentHistory(context.Background(), studentCaller)
	if err != nil {
		t.Fatalf("StudentHistory returned error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}

	// Staff roles have no own-record scope.
	_, err = fix.service.StudentHistory(context.Background(), facultyCaller)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("faculty history: error = %v, want forbidden", err)
	}
}
