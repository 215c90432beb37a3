// Package scope computes, per request, the predicate restricting which
// records a caller may read or mutate. The predicate is derived from the
// caller's role and its directory relationships (a faculty's department, a
// student's own record) and is deny-by-default: any role/collection pair
// without a defined rule matches nothing.
package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// Collection identifies a scoped record collection.
type Collection string

const (
	CollectionStudents   Collection = "students"
	CollectionAttendance Collection = "attendance"
	CollectionResults    Collection = "results"
)

// Caller is the verified identity every operation receives from the
// authentication layer.
type Caller struct {
	AccountID int64
	Role      models.RoleType
}

// Predicate is a pure filter over one collection. It renders to a SQL
// fragment for reads and answers point checks for writes.
type Predicate struct {
	all          bool
	departmentID int64 // >0: restricted to students of this department
	studentID    int64 // >0: restricted to this student's own records
}

// DenyAll is the predicate that matches nothing.
var DenyAll = Predicate{}

// Unrestricted reports whether the predicate matches every row.
func (p Predicate) Unrestricted() bool { return p.all }

// Empty reports whether the predicate matches nothing.
func (p Predicate) Empty() bool {
	return !p.all && p.departmentID == 0 && p.studentID == 0
}

// DepartmentID returns the department restriction, if any.
func (p Predicate) DepartmentID() (int64, bool) {
	return p.departmentID, p.departmentID > 0
}

// StudentID returns the own-record restriction, if any.
func (p Predicate) StudentID() (int64, bool) {
	return p.studentID, p.studentID > 0
}

// AllowsStudent answers whether a write targeting the given student is
// inside scope. A pending student has no department and is therefore never
// writable by a department-scoped caller.
func (p Predicate) AllowsStudent(student *models.Student) bool {
	if student == nil {
		return false
	}
	switch {
	case p.all:
		return true
	case p.departmentID > 0:
		return student.DepartmentID != nil && *student.DepartmentID == p.departmentID
	case p.studentID > 0:
		return student.ID == p.studentID
	}
	return false
}

// SQL renders the predicate as a WHERE fragment over a students table
// aliased by studentAlias, with the positional argument starting at
// argIndex. An unrestricted predicate renders to TRUE. Rendering an empty
// predicate is a programming error; callers must short-circuit on Empty.
func (p Predicate) SQL(studentAlias string, argIndex int) (string, []interface{}) {
	switch {
	case p.all:
		return "TRUE", nil
	case p.departmentID > 0:
		return fmt.Sprintf("%s.department_id = $%d", studentAlias, argIndex), []interface{}{p.departmentID}
	case p.studentID > 0:
		return fmt.Sprintf("%s.id = $%d", studentAlias, argIndex), []interface{}{p.studentID}
	}
	return "FALSE", nil
}

// FacultyDirectory resolves a faculty record from a caller's account.
type FacultyDirectory interface {
	GetByAccountID(ctx context.Context, accountID int64) (*models.Faculty, error)
}

// StudentDirectory resolves a student record from a caller's account.
type StudentDirectory interface {
	GetByAccountID(ctx context.Context, accountID int64) (*models.Student, error)
}

// Resolver computes scope predicates from directory state. Directory reads
// are a per-request snapshot; nothing is cached across requests.
type Resolver struct {
	faculty  FacultyDirectory
	students StudentDirectory
}

// NewResolver creates a Resolver over the given directory lookups.
func NewResolver(faculty FacultyDirectory, students StudentDirectory) *Resolver {
	return &Resolver{faculty: faculty, students: students}
}

// Scope computes the caller's predicate for a collection.
//
// A missing directory record fails closed: a caller with the faculty role
// but no faculty row (or student role without a student row) gets the
// deny-all predicate, not an error, so the request surfaces as Forbidden
// rather than leaking directory state.
func (r *Resolver) Scope(ctx context.Context, caller Caller, collection Collection) (Predicate, error) {
	switch collection {
	case CollectionStudents, CollectionAttendance, CollectionResults:
	default:
		return DenyAll, nil
	}

	switch caller.Role {
	case models.RoleAdmin:
		return Predicate{all: true}, nil

	case models.RoleFaculty:
		faculty, err := r.faculty.GetByAccountID(ctx, caller.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrFacultyNotFound) || errors.Is(err, apperrors.ErrNotFound) {
				return DenyAll, nil
			}
			return DenyAll, fmt.Errorf("resolving faculty scope: %w", err)
		}
		if faculty == nil {
			return DenyAll, nil
		}
		return Predicate{departmentID: faculty.DepartmentID}, nil

	case models.RoleStudent:
		student, err := r.students.GetByAccountID(ctx, caller.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) || errors.Is(err, apperrors.ErrNotFound) {
				return DenyAll, nil
			}
			return DenyAll, fmt.Errorf("resolving student scope: %w", err)
		}
		if student == nil {
			return DenyAll, nil
		}
		return Predicate{studentID: student.ID}, nil
	}

	return DenyAll, nil
}
