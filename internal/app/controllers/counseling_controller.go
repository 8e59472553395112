package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/services"
	"github.com/anirudh/campuspoints/internal/middleware"
)

// CounselingController handles the counselor-student assignment relation
type CounselingController struct {
	counselingService services.CounselingService
	logger            zerolog.Logger
}

// NewCounselingController creates a new CounselingController
func NewCounselingController(counselingService services.CounselingService, logger zerolog.Logger) *CounselingController {
	return &CounselingController{
		counselingService: counselingService,
		logger:            logger,
	}
}

// Assign links a student to the calling counselor
// @Summary Assign a student
// @Description Idempotent: assigning an already assigned student succeeds without effect.
// @Tags counseling
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignStudentRequest true "Student to assign"
// @Success 200 {object} dto.APIResponse "Student assigned"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /counseling/students [post]
func (c *CounselingController) Assign(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AssignStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.counselingService.Assign(ctx.Request.Context(), actor, req.StudentUSN); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Student assigned"},
	})
}

// Unassign removes the link between the caller and a student
// @Summary Unassign a student
// @Description Removes only the caller's own link. Unassigning a student who is not assigned is a quiet no-op.
// @Tags counseling
// @Produce json
// @Security BearerAuth
// @Param usn path string true "Student USN"
// @Success 200 {object} dto.APIResponse "Student unassigned"
// @Router /counseling/students/{usn} [delete]
func (c *CounselingController) Unassign(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.counselingService.Unassign(ctx.Request.Context(), actor, ctx.Param("usn")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Student unassigned"},
	})
}

// ListAssigned returns the students assigned to the caller
// @Summary List assigned students
// @Tags counseling
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Assigned students"
// @Router /counseling/students [get]
func (c *CounselingController) ListAssigned(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.counselingService.ListAssigned(ctx.Request.Context(), actor)
	if err != nil {
		c.logger.Error().Err(err).Str("teacherId", actor.Key).Msg("Failed to list assigned students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: students,
	})
}

// ListAllStudents returns the whole student directory for staff
// @Summary Browse the student directory
// @Tags counseling
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "All students"
// @Router /counseling/directory [get]
func (c *CounselingController) ListAllStudents(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.counselingService.ListAllStudents(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: students,
	})
}
