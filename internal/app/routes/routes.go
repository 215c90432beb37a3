package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/controllers"
	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/middleware"
)

// Controllers groups everything SetupRouter mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Admission  *controllers.AdmissionController
	Attendance *controllers.AttendanceController
	Result     *controllers.ResultController
	Me         *controllers.MeController
	Department *controllers.DepartmentController
	Course     *controllers.CourseController
	Subject    *controllers.SubjectController
	Faculty    *controllers.FacultyController
	Student    *controllers.StudentController
	Notice     *controllers.NoticeController
	Admin      *controllers.AdminController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Directory reads are open to every authenticated role.
		departments := authenticated.Group("/departments")
		{
			departments.GET("", c.Department.GetAllDepartments)
			departments.GET("/:id", c.Department.GetDepartmentByID)

			departmentsAdmin := departments.Group("")
			departmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				departmentsAdmin.POST("", c.Department.CreateDepartment)
				departmentsAdmin.PUT("/:id", c.Department.UpdateDepartment)
				departmentsAdmin.DELETE("/:id", c.Department.DeleteDepartment)
			}
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", c.Course.GetAllCourses)
			courses.GET("/:id", c.Course.GetCourseByID)

			coursesAdmin := courses.Group("")
			coursesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				coursesAdmin.POST("", c.Course.CreateCourse)
				coursesAdmin.PUT("/:id", c.Course.UpdateCourse)
				coursesAdmin.DELETE("/:id", c.Course.DeleteCourse)
			}
		}

		subjects := authenticated.Group("/subjects")
		{
			subjects.GET("", c.Subject.GetAllSubjects)
			subjects.GET("/:id", c.Subject.GetSubjectByID)

			subjectsAdmin := subjects.Group("")
			subjectsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				subjectsAdmin.POST("", c.Subject.CreateSubject)
				subjectsAdmin.PUT("/:id", c.Subject.UpdateSubject)
				subjectsAdmin.DELETE("/:id", c.Subject.DeleteSubject)
			}
		}

		faculty := authenticated.Group("/faculty")
		{
			faculty.GET("", c.Faculty.GetAllFaculty)
			faculty.GET("/:id", c.Faculty.GetFacultyByID)

			facultyAdmin := faculty.Group("")
			facultyAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				facultyAdmin.POST("", c.Faculty.CreateFaculty)
				facultyAdmin.PUT("/:id", c.Faculty.UpdateFaculty)
				facultyAdmin.DELETE("/:id", c.Faculty.DeleteFaculty)
			}
		}

		// Student directory reads are scoped inside the service layer;
		// the route only requires a staff role.
		students := authenticated.Group("/students")
		students.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
		{
			students.GET("", c.Student.ListStudents)
			students.GET("/:id", c.Student.GetStudentByID)
		}

		// Admission decisions are admin-only; the service re-checks the
		// role so the rule holds even if a route is mismounted.
		admissions := authenticated.Group("/admissions")
		admissions.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admissions.GET("/pending", c.Admission.ListPending)
			admissions.POST("/:id/approve", c.Admission.Approve)
			admissions.POST("/:id/reject", c.Admission.Reject)
		}

		attendance := authenticated.Group("/attendance")
		attendance.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
		{
			attendance.POST("", c.Attendance.Mark)
			attendance.POST("/bulk", c.Attendance.MarkBulk)
			attendance.GET("", c.Attendance.SubjectAttendance)
		}

		results := authenticated.Group("/results")
		results.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
		{
			results.PUT("/:studentId/:subjectId/:semester", c.Result.Record)
		}

		me := authenticated.Group("/me")
		me.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			me.GET("", c.Me.Profile)
			me.GET("/attendance", c.Me.Attendance)
			me.GET("/results", c.Me.Results)
		}

		notices := authenticated.Group("/notices")
		{
			notices.GET("", c.Notice.ListNotices)
			notices.GET("/:id", c.Notice.GetNotice)

			noticesStaff := notices.Group("")
			noticesStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
			{
				noticesStaff.POST("", c.Notice.CreateNotice)
			}

			noticesAdmin := notices.Group("")
			noticesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				noticesAdmin.DELETE("/:id", c.Notice.DeleteNotice)
			}
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/settings/reload", c.Admin.ReloadSettings)
		}
	}
}
