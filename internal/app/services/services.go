package services

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/okaya/campusgate/internal/app/repositories"
	"github.com/okaya/campusgate/internal/app/scope"
	"github.com/okaya/campusgate/internal/config"
	"github.com/okaya/campusgate/internal/pkg/auth"
)

// Services is a container for all business services
type Services struct {
	AuthService       *AuthService
	AdmissionService  *AdmissionService
	AttendanceService *AttendanceService
	ResultService     *ResultService
	DepartmentService *DepartmentService
	CourseService     *CourseService
	SubjectService    *SubjectService
	FacultyService    *FacultyService
	StudentService    *StudentService
	NoticeService     *NoticeService
}

// NewServices wires all services over the repositories and shared
// infrastructure.
func NewServices(
	pool *pgxpool.Pool,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	settings *config.Settings,
	logger zerolog.Logger,
) *Services {
	resolver := scope.NewResolver(repos.FacultyRepository, repos.StudentRepository)

	return &Services{
		AuthService: NewAuthService(pool, repos.AccountRepository, repos.StudentRepository, jwtService, logger),
		AdmissionService: NewAdmissionService(
			repos.StudentRepository,
			repos.DepartmentRepository,
			repos.CourseRepository,
			logger,
		),
		AttendanceService: NewAttendanceService(
			repos.AttendanceRepository,
			repos.SubjectRepository,
			repos.StudentRepository,
			repos.FacultyRepository,
			resolver,
			logger,
		),
		ResultService: NewResultService(
			repos.ResultRepository,
			repos.SubjectRepository,
			repos.StudentRepository,
			resolver,
			settings,
			logger,
		),
		DepartmentService: NewDepartmentService(repos.DepartmentRepository),
		CourseService:     NewCourseService(repos.CourseRepository, repos.DepartmentRepository),
		SubjectService:    NewSubjectService(repos.SubjectRepository, repos.CourseRepository, repos.FacultyRepository),
		FacultyService:    NewFacultyService(pool, repos.FacultyRepository, repos.AccountRepository, repos.DepartmentRepository, logger),
		StudentService:    NewStudentService(repos.StudentRepository, resolver),
		NoticeService:     NewNoticeService(repos.NoticeRepository),
	}
}
