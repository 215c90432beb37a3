package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is a container for all repositories
type Repositories struct {
	AccountRepository    *AccountRepository
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	SubjectRepository    *SubjectRepository
	FacultyRepository    *FacultyRepository
	StudentRepository    *StudentRepository
	AttendanceRepository *AttendanceRepository
	ResultRepository     *ResultRepository
	NoticeRepository     *NoticeRepository
}

// NewRepositories creates all repositories over one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:    NewAccountRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		FacultyRepository:    NewFacultyRepository(db),
		StudentRepository:    NewStudentRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		ResultRepository:     NewResultRepository(db),
		NoticeRepository:     NewNoticeRepository(db),
	}
}
