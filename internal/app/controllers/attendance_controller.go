package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/services"
	"github.com/okaya/campusgate/internal/middleware"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// AttendanceController handles attendance ledger endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Mark records one student's attendance
// @Summary Mark attendance
// @Description Records one student's attendance for a subject on a day; re-marking overwrites
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance fact"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRecordResponse} "Attendance updated"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceRecordResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid date, status or student state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student outside caller scope"
// @Failure 404 {object} dto.ErrorResponse "Subject or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	record, created, err := c.attendanceService.MarkOne(ctx, caller, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	message := "Attendance updated"
	if created {
		status = http.StatusCreated
		message = "Attendance recorded"
	}
	ctx.JSON(status, dto.NewSuccessResponse(dto.NewAttendanceRecordResponse(record), message))
}

// MarkBulk records a whole class session
// @Summary Mark attendance in bulk
// @Description Records many students for one subject and day; entries are applied independently
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkMarkAttendanceRequest true "Session entries"
// @Success 200 {object} dto.APIResponse{data=dto.BulkMarkAttendanceResponse} "Per-entry outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid date or empty entries"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/bulk [post]
func (c *AttendanceController) MarkBulk(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	var req dto.BulkMarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.attendanceService.MarkBulk(ctx, caller, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// SubjectAttendance returns the roster for a subject and date
// @Summary Get subject attendance
// @Description Retrieves the attendance roster for a subject and date within the caller's scope
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param subjectId query int true "Subject ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectAttendanceResponse} "Roster"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller has no attendance scope"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) SubjectAttendance(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	subjectID, err := strconv.ParseInt(ctx.Query("subjectId"), 10, 64)
	if err != nil || subjectID <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("subjectId", "subjectId must be a positive number"))
		return
	}
	date := ctx.Query("date")

	records, err := c.attendanceService.SubjectAttendance(ctx, caller, subjectID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.SubjectAttendanceResponse{
		SubjectID: subjectID,
		Date:      date,
		Records:   dto.NewAttendanceRecordListResponse(records),
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
