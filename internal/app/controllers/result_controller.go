package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/app/services"
	"github.com/okaya/campusgate/internal/middleware"
)

// ResultController handles result ledger endpoints
type ResultController struct {
	resultService *services.ResultService
}

// NewResultController creates a new ResultController
func NewResultController(resultService *services.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// Record files marks for a student in a subject and semester
// @Summary Record a result
// @Description Stores marks for one (student, subject, semester) tuple; re-filing overwrites
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param subjectId path int true "Subject ID"
// @Param semester path int true "Semester"
// @Param request body dto.RecordResultRequest true "Marks"
// @Success 200 {object} dto.APIResponse{data=dto.ResultRecordResponse} "Result recorded"
// @Failure 400 {object} dto.ErrorResponse "Marks out of range or mismatched semester"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student outside caller scope"
// @Failure 404 {object} dto.ErrorResponse "Student or subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/{studentId}/{subjectId}/{semester} [put]
func (c *ResultController) Record(ctx *gin.Context) {
	caller, ok := middleware.CallerFrom(ctx)
	if !ok {
		respondMissingIdentity(ctx)
		return
	}

	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	subjectID, err := parseIDParam(ctx, "subjectId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	semester, err := strconv.Atoi(ctx.Param("semester"))
	if err != nil {
		middleware.HandleAPIError(ctx, invalidIDError("semester"))
		return
	}

	var req dto.RecordResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	record, err := c.resultService.Record(ctx, caller, studentID, subjectID, semester, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewResultRecordResponse(record), "Result recorded"))
}
