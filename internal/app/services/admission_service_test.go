package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

type fakeAdmissionStore struct {
	students   map[int64]*models.Student
	approveErr error
	rejectErr  error

	approved map[int64]models.AdmissionAssignment
	rejected map[int64]string
}

func newFakeAdmissionStore(students ...*models.Student) *fakeAdmissionStore {
	store := &fakeAdmissionStore{
		students: map[int64]*models.Student{},
		approved: map[int64]models.AdmissionAssignment{},
		rejected: map[int64]string{},
	}
	for _, s := range students {
		store.students[s.ID] = s
	}
	return store
}

func (f *fakeAdmissionStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeAdmissionStore) ListPending(ctx context.Context) ([]*models.Student, error) {
	var pending []*models.Student
	for _, s := range f.students {
		if s.Status == models.ApprovalPending {
			pending = append(pending, s)
		}
	}
	return pending, nil
}

func (f *fakeAdmissionStore) Approve(ctx context.Context, id int64, assignment models.AdmissionAssignment) (*models.Student, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	student, ok := f.students[id]
	if !ok || student.Status != models.ApprovalPending {
		return nil, repositories.ErrNoPendingStudent
	}
	student.Status = models.ApprovalApproved
	student.DepartmentID = &assignment.DepartmentID
	student.CourseID = &assignment.CourseID
	student.Semester = &assignment.Semester
	student.EnrollmentNumber = &assignment.EnrollmentNumber
	student.RollNumber = &assignment.RollNumber
	f.approved[id] = assignment
	return student, nil
}

func (f *fakeAdmissionStore) Reject(ctx context.Context, id int64, reason string) (*models.Student, error) {
	if f.rejectErr != nil {
		return nil, f.rejectErr
	}
	student, ok := f.students[id]
	if !ok || student.Status != models.ApprovalPending {
		return nil, repositories.ErrNoPendingStudent
	}
	student.Status = models.ApprovalRejected
	student.RejectionReason = &reason
	f.rejected[id] = reason
	return student, nil
}

type fakeDepartmentStore struct {
	departments map[int64]*models.Department
}

func (f *fakeDepartmentStore) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	dept, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return dept, nil
}

type fakeCourseStore struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func validApproveRequest() dto.ApproveAdmissionRequest {
	return dto.ApproveAdmissionRequest{
		DepartmentID:     1,
		CourseID:         2,
		Semester:         1,
		EnrollmentNumber: "EN-2024-001",
		RollNumber:       "CS-01",
	}
}

func newAdmissionFixture(students ...*models.Student) (*AdmissionService, *fakeAdmissionStore) {
	store := newFakeAdmissionStore(students...)
	departments := &fakeDepartmentStore{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CS"},
	}}
	courses := &fakeCourseStore{courses: map[int64]*models.Course{
		2: {ID: 2, Code: "BTECH-CS", DepartmentID: 1, TotalSemesters: 8},
		3: {ID: 3, Code: "BSC-MATH", DepartmentID: 9, TotalSemesters: 6},
	}}
	svc := NewAdmissionService(store, departments, courses, zerolog.Nop())
	return svc, store
}

var adminCaller = scope.Caller{AccountID: 1, Role: models.RoleAdmin}

func TestApproveAssignsPlacement(t *testing.T) {
	svc, store := newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalPending})

	student, err := svc.Approve(context.Background(), adminCaller, 10, validApproveRequest())
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	if student.Status != models.ApprovalApproved {
		t.Errorf("status = %s, want APPROVED", student.Status)
	}
	assignment, ok := store.approved[10]
	if !ok {
		t.Fatal("approve was not delegated to the store")
	}
	if assignment.EnrollmentNumber != "EN-2024-001" || assignment.RollNumber != "CS-01" {
		t.Errorf("assignment = %+v, want trimmed request values", assignment)
	}
}

func TestApproveRequiresAdminRole(t *testing.T) {
	svc, store := newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalPending})

	for _, role := range []models.RoleType{models.RoleFaculty, models.RoleStudent} {
		_, err := svc.Approve(context.Background(), scope.Caller{AccountID: 2, Role: role}, 10, validApproveRequest())
		if !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("Approve as %s: error = %v, want forbidden", role, err)
		}
	}
	if len(store.approved) != 0 {
		t.Error("non-admin approval reached the store")
	}
}

func TestApprovePlacementValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.ApproveAdmissionRequest)
	}{
		{"empty enrollment number", func(r *dto.ApproveAdmissionRequest) { r.EnrollmentNumber = "  " }},
		{"empty roll number", func(r *dto.ApproveAdmissionRequest) { r.RollNumber = "" }},
		{"semester below range", func(r *dto.ApproveAdmissionRequest) { r.Semester = 0 }},
		{"semester above range", func(r *dto.ApproveAdmissionRequest) { r.Semester = 9 }},
		{"unknown department", func(r *dto.ApproveAdmissionRequest) { r.DepartmentID = 99 }},
		{"unknown course", func(r *dto.ApproveAdmissionRequest) { r.CourseID = 99 }},
		{"course of another department", func(r *dto.ApproveAdmissionRequest) { r.CourseID = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalPending})
			req := validApproveRequest()
			tt.mutate(&req)

			_, err := svc.Approve(context.Background(), adminCaller, 10, req)
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
			if len(store.approved) != 0 {
				t.Error("invalid placement reached the store")
			}
		})
	}
}

func TestApproveSemesterBeyondCourse(t *testing.T) {
	svc, _ := newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalPending})
	req := validApproveRequest()
	req.CourseID = 2
	req.Semester = 8 // within global bounds

	// Shrink the course below the requested semester.
	svc.courses.(*fakeCourseStore).courses[2].TotalSemesters = 6

	_, err := svc.Approve(context.Background(), adminCaller, 10, req)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestDecideAlreadyDecided(t *testing.T) {
	svc, _ := newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalApproved})

	_, err := svc.Approve(context.Background(), adminCaller, 10, validApproveRequest())
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("Approve on decided student: error = %v, want invalid state", err)
	}

	_, err = svc.Reject(context.Background(), adminCaller, 10, "incomplete documents")
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("Reject on decided student: error = %v, want invalid state", err)
	}
}

func TestDecideMissingStudent(t *testing.T) {
	svc, _ := newAdmissionFixture()

	_, err := svc.Approve(context.Background(), adminCaller, 99, validApproveRequest())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Approve on missing student: error = %v, want not found", err)
	}
}

func TestRejectRecordsReason(t *testing.T) {
	svc, store := newFakeReject(t)

	student, err := svc.Reject(context.Background(), adminCaller, 10, "  incomplete documents  ")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if student.Status != models.ApprovalRejected {
		t.Errorf("status = %s, want REJECTED", student.Status)
	}
	if store.rejected[10] != "incomplete documents" {
		t.Errorf("recorded reason = %q, want trimmed reason", store.rejected[10])
	}
}

func newFakeReject(t *testing.T) (*AdmissionService, *fakeAdmissionStore) {
	t.Helper()
	return newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalPending})
}

func TestRejectEmptyReason(t *testing.T) {
	svc, store := newFakeReject(t)

	_, err := svc.Reject(context.Background(), adminCaller, 10, "   ")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
	if len(store.rejected) != 0 {
		t.Error("empty reason reached the store")
	}
}

func TestListPendingRequiresAdmin(t *testing.T) {
	svc, _ := newAdmissionFixture(&models.Student{ID: 10, Status: models.ApprovalPending})

	_, err := svc.ListPending(context.Background(), scope.Caller{AccountID: 2, Role: models.RoleFaculty})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("error = %v, want forbidden", err)
	}

	pending, err := svc.ListPending(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("len(pending) = %d, want 1", len(pending))
	}
}
