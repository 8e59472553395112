package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/services"
	"github.com/anirudh/campuspoints/internal/middleware"
)

// ParticipationController handles per-student participation records
type ParticipationController struct {
	participationService services.ParticipationService
	logger               zerolog.Logger
}

// NewParticipationController creates a new ParticipationController
func NewParticipationController(participationService services.ParticipationService, logger zerolog.Logger) *ParticipationController {
	return &ParticipationController{
		participationService: participationService,
		logger:               logger,
	}
}

// Record stores a participation entry for a club-wide activity
// @Summary Record participation
// @Description Club-only, against the club's own club-wide activities. The entry carries its own points and optional position.
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordParticipationRequest true "Participation entry"
// @Success 201 {object} dto.APIResponse "Participation recorded"
// @Failure 400 {object} dto.ErrorResponse "Not a club-wide activity"
// @Failure 403 {object} dto.ErrorResponse "Activity belongs to another club"
// @Router /participations [post]
func (c *ParticipationController) Record(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RecordParticipationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participation, err := c.participationService.Record(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: participation,
	})
}

// ListByActivity returns the participation entries for one activity
// @Summary List participation for an activity
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse "Participation entries"
// @Router /activities/{id}/participations [get]
func (c *ParticipationController) ListByActivity(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	activityID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid activity ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participations, err := c.participationService.ListByActivity(ctx.Request.Context(), actor, activityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: participations,
	})
}

// ListOwn returns the calling student's participation records
// @Summary List own participation
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Own participation entries"
// @Router /participations/me [get]
func (c *ParticipationController) ListOwn(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	participations, err := c.participationService.ListOwn(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: participations,
	})
}
