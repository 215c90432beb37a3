package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/services"
	"github.com/okaya/campusgate/internal/middleware"
)

// MeController handles the calling student's own-record endpoints
type MeController struct {
	studentService    *services.StudentService
	attendanceService *services.AttendanceService
	resultService     *services.ResultService
}

// NewMeController creates a new MeController
func NewMeController(
	studentService *services.StudentService,
	attendanceService *services.AttendanceService,
	resultService *services.ResultService,
) *MeController {
	return &MeController{
		studentService:    studentService,
		attendanceService: attendanceService,
		resultService:     resultService,
	}
}

// Profile returns the calling student's directory record
// @Summary Get own student record
// @Description Retrieves the directory record owned by the calling account
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Own record"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me [get]
func (c *MeController) Profile(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	student, err := c.studentService.OwnRecord(ctx, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student), ""))
}

// Attendance returns the calling student's attendance history
// @Summary Get own attendance
// @Description Retrieves the calling student's attendance records, newest day first
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceRecordResponse} "Attendance history"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No student scope for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/attendance [get]
func (c *MeController) Attendance(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	records, err := c.attendanceService.StudentHistory(ctx, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAttendanceRecordListResponse(records), ""))
}

// Results returns the calling student's result sheet
// @Summary Get own results
// @Description Retrieves the calling student's results ordered by semester
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ResultRecordResponse} "Result sheet"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No student scope for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/results [get]
func (c *MeController) Results(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	records, err := c.resultService.StudentResults(ctx, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewResultRecordListResponse(records), ""))
}
