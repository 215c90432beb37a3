package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/services"
	"github.com/okaya/campusgate/internal/middleware"
)

// AdmissionController handles the admission decision endpoints
type AdmissionController struct {
	admissionService *services.AdmissionService
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissionService *services.AdmissionService) *AdmissionController {
	return &AdmissionController{admissionService: admissionService}
}

// ListPending lists students awaiting an admission decision
// @Summary List pending admissions
// @Description Retrieves all students awaiting a decision, oldest first
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Pending admissions"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admissions/pending [get]
func (c *AdmissionController) ListPending(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	students, err := c.admissionService.ListPending(ctx, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentListResponse(students), ""))
}

// Approve approves a pending admission with a placement
// @Summary Approve an admission
// @Description Transitions a pending student to APPROVED with department, course, semester and numbers
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.ApproveAdmissionRequest true "Placement"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Admission approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid placement or admission already decided"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment or roll number already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admissions/{id}/approve [post]
func (c *AdmissionController) Approve(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ApproveAdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.admissionService.Approve(ctx, caller, studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student), "Admission approved"))
}

// Reject rejects a pending admission
// @Summary Reject an admission
// @Description Transitions a pending student to REJECTED with a reason
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.RejectAdmissionRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Admission rejected"
// @Failure 400 {object} dto.ErrorResponse "Missing reason or admission already decided"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admissions/{id}/reject [post]
func (c *AdmissionController) Reject(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RejectAdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.admissionService.Reject(ctx, caller, studentID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student), "Admission rejected"))
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidIDError(name)
	}
	return id, nil
}
