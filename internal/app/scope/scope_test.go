package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

type fakeFacultyDirectory struct {
	faculty *models.Faculty
	err     error
}

func (f *fakeFacultyDirectory) GetByAccountID(ctx context.Context, accountID int64) (*models.Faculty, error) {
	return f.faculty, f.err
}

type fakeStudentDirectory struct {
	student *models.Student
	err     error
}

func (f *fakeStudentDirectory) GetByAccountID(ctx context.Context, accountID int64) (*models.Student, error) {
	return f.student, f.err
}

func TestScopeAdminUnrestricted(t *testing.T) {
	r := NewResolver(&fakeFacultyDirectory{}, &fakeStudentDirectory{})

	for _, collection := range []Collection{CollectionStudents, CollectionAttendance, CollectionResults} {
		p, err := r.Scope(context.Background(), Caller{AccountID: 1, Role: models.RoleAdmin}, collection)
		if err != nil {
			t.Fatalf("Scope(%s) returned error: %v", collection, err)
		}
		if !p.Unrestricted() {
			t.Errorf("Scope(%s) = %+v, want unrestricted", collection, p)
		}
	}
}

func TestScopeFacultyDepartmentRestriction(t *testing.T) {
	r := NewResolver(
		&fakeFacultyDirectory{faculty: &models.Faculty{ID: 4, AccountID: 9, DepartmentID: 12}},
		&fakeStudentDirectory{},
	)

	p, err := r.Scope(context.Background(), Caller{AccountID: 9, Role: models.RoleFaculty}, CollectionAttendance)
	if err != nil {
		t.Fatalf("Scope returned error: %v", err)
	}

	deptID, ok := p.DepartmentID()
	if !ok || deptID != 12 {
		t.Errorf("DepartmentID() = (%d, %t), want (12, true)", deptID, ok)
	}
	if p.Unrestricted() || p.Empty() {
		t.Errorf("predicate = %+v, want department-restricted", p)
	}
}

func TestScopeStudentOwnRecord(t *testing.T) {
	r := NewResolver(
		&fakeFacultyDirectory{},
		&fakeStudentDirectory{student: &models.Student{ID: 7, AccountID: 3}},
	)

	p, err := r.Scope(context.Background(), Caller{AccountID: 3, Role: models.RoleStudent}, CollectionResults)
	if err != nil {
		t.Fatalf("Scope returned error: %v", err)
	}

	studentID, ok := p.StudentID()
	if !ok || studentID != 7 {
		t.Errorf("StudentID() = (%d, %t), want (7, true)", studentID, ok)
	}
}

func TestScopeFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		fac    *fakeFacultyDirectory
		stu    *fakeStudentDirectory
	}{
		{
			name:   "faculty role without faculty record",
			caller: Caller{AccountID: 1, Role: models.RoleFaculty},
			fac:    &fakeFacultyDirectory{err: apperrors.ErrFacultyNotFound},
			stu:    &fakeStudentDirectory{},
		},
		{
			name:   "student role without student record",
			caller: Caller{AccountID: 1, Role: models.RoleStudent},
			fac:    &fakeFacultyDirectory{},
			stu:    &fakeStudentDirectory{err: apperrors.ErrStudentNotFound},
		},
		{
			name:   "unknown role",
			caller: Caller{AccountID: 1, Role: models.RoleType("AUDITOR")},
			fac:    &fakeFacultyDirectory{},
			stu:    &fakeStudentDirectory{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.fac, tt.stu)
			p, err := r.Scope(context.Background(), tt.caller, CollectionStudents)
			if err != nil {
				t.Fatalf("Scope returned error: %v", err)
			}
			if !p.Empty() {
				t.Errorf("predicate = %+v, want deny-all", p)
			}
		})
	}
}

func TestScopeUnknownCollectionDeniesAll(t *testing.T) {
	r := NewResolver(&fakeFacultyDirectory{}, &fakeStudentDirectory{})

	p, err := r.Scope(context.Background(), Caller{AccountID: 1, Role: models.RoleAdmin}, Collection("invoices"))
	if err != nil {
		t.Fatalf("Scope returned error: %v", err)
	}
	if !p.Empty() {
		t.Errorf("predicate = %+v, want deny-all for unknown collection", p)
	}
}

func TestScopeDirectoryOutagePropagates(t *testing.T) {
	outage := errors.New("connection refused")
	r := NewResolver(&fakeFacultyDirectory{err: outage}, &fakeStudentDirectory{})

	_, err := r.Scope(context.Background(), Caller{AccountID: 1, Role: models.RoleFaculty}, CollectionStudents)
	if !errors.Is(err, outage) {
		t.Errorf("Scope error = %v, want wrapped outage", err)
	}
}

func TestPredicateAllowsStudent(t *testing.T) {
	dept := int64(12)
	otherDept := int64(13)
	admitted := &models.Student{ID: 7, DepartmentID: &dept}
	other := &models.Student{ID: 8, DepartmentID: &otherDept}
	pending := &models.Student{ID: 9} // no department assigned yet

	tests := []struct {
		name      string
		predicate Predicate
		student   *models.Student
		want      bool
	}{
		{"unrestricted allows anyone", Predicate{all: true}, pending, true},
		{"department match", Predicate{departmentID: 12}, admitted, true},
		{"department mismatch", Predicate{departmentID: 12}, other, false},
		{"department scope excludes pending", Predicate{departmentID: 12}, pending, false},
		{"own record match", Predicate{studentID: 7}, admitted, true},
		{"own record mismatch", Predicate{studentID: 7}, other, false},
		{"deny-all", DenyAll, admitted, false},
		{"nil student", Predicate{all: true}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate.AllowsStudent(tt.student); got != tt.want {
				t.Errorf("AllowsStudent() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestPredicateSQL(t *testing.T) {
	tests := []struct {
		name      string
		predicate Predicate
		wantSQL   string
		wantArgs  int
	}{
		{"unrestricted", Predicate{all: true}, "TRUE", 0},
		{"department", Predicate{departmentID: 12}, "s.department_id = $3", 1},
		{"own record", Predicate{studentID: 7}, "s.id = $3", 1},
		{"deny-all", DenyAll, "FALSE", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.predicate.SQL("s", 3)
			if sql != tt.wantSQL {
				t.Errorf("SQL() = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("SQL() returned %d args, want %d", len(args), tt.wantArgs)
			}
		})
	}
}
