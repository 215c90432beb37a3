package models

// RoleType defines the account role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleFaculty RoleType = "FACULTY"
	RoleStudent RoleType = "STUDENT"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	}
	return false
}

// ApprovalStatus is the admission state of a student record. The only
// transitions are PENDING -> APPROVED and PENDING -> REJECTED; both are
// terminal.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// AttendanceStatus is the presence state of one attendance fact.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// Valid reports whether the status is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// CourseType defines the degree level of a course
type CourseType string

const (
	CourseUG      CourseType = "UG"
	CoursePG      CourseType = "PG"
	CourseDiploma CourseType = "DIPLOMA"
)

// Valid reports whether the course type is known.
func (t CourseType) Valid() bool {
	switch t {
	case CourseUG, CoursePG, CourseDiploma:
		return true
	}
	return false
}

// Grade is a letter grade derived from total marks.
type Grade string

// Letter grades, best first.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// NoticeAudience defines who a notice targets.
type NoticeAudience string

const (
	AudienceStudents NoticeAudience = "STUDENTS"
	AudienceFaculty  NoticeAudience = "FACULTY"
	AudienceAll      NoticeAudience = "ALL"
)

// Valid reports whether the audience is known.
func (a NoticeAudience) Valid() bool {
	switch a {
	case AudienceStudents, AudienceFaculty, AudienceAll:
		return true
	}
	return false
}

// MinSemester and MaxSemester bound every semester value in the system.
const (
	MinSemester = 1
	MaxSemester = 8
)
