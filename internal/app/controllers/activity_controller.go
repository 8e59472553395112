package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/services"
	"github.com/anirudh/campuspoints/internal/middleware"
	"github.com/anirudh/campuspoints/internal/pkg/filestorage"
)

// ActivityController handles activity insertion, listing, approval and
// document access.
type ActivityController struct {
	activityService services.ActivityService
	statsService    services.StatsService
	fileStorage     filestorage.FileStorage
	logger          zerolog.Logger
}

// NewActivityController creates a new ActivityController
func NewActivityController(
	activityService services.ActivityService,
	statsService services.StatsService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		statsService:    statsService,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// List returns the activities visible to the caller
// @Summary List visible activities
// @Description Staff see every activity; a student sees their own rows plus approved club-wide rows. Newest event date first.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Visible activities"
// @Router /activities [get]
func (c *ActivityController) List(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	activities, err := c.activityService.ListFor(ctx.Request.Context(), actor)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list activities")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: activities,
	})
}

// Get returns a single activity if the caller may see it
// @Summary Get an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse "Activity"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /activities/{id} [get]
func (c *ActivityController) Get(ctx *gin.Context) {
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

	activity, err := c.activityService.Get(ctx.Request.Context(), actor, activityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: activity,
	})
}

// Create inserts a new activity on behalf of a club
// @Summary Insert an activity
// @Description Club-only. Accepts multipart form data; an optional document file part is stored and linked. A studentUsn field targets the activity at one student, otherwise it is club-wide.
// @Tags activities
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param activityName formData string true "Activity name"
// @Param date formData string true "Event date (YYYY-MM-DD)"
// @Param points formData int false "Points awarded on approval"
// @Param deadline formData string false "Advisory deadline (YYYY-MM-DD)"
// @Param studentUsn formData string false "Target student USN"
// @Param document formData file false "Supporting document"
// @Success 201 {object} dto.APIResponse "Activity inserted"
// @Failure 400 {object} dto.ErrorResponse "Invalid form data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a club"
// @Router /activities [post]
func (c *ActivityController) Create(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid activity form data")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	activity, err := c.activityService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The document part is optional; absence is not an error
	if fileHeader, err := ctx.FormFile("document"); err == nil && fileHeader != nil {
		fileURL, err := c.fileStorage.SaveFileWithPath(fileHeader, "activities")
		if err != nil {
			c.logger.Error().Err(err).Int64("activityId", activity.ActivityID).Msg("Failed to store activity document")
			middleware.HandleAPIError(ctx, err)
			return
		}

		if err := c.activityService.AttachDocument(ctx.Request.Context(), actor, activity.ActivityID, fileURL); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		activity.DocumentURL = &fileURL
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: activity,
	})
}

// Approve marks a pending activity approved
// @Summary Approve an activity
// @Description Staff-only. One step flips the approval status, unlocks the document for student download and records the approving teacher. Approving twice answers 409.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse "Approved activity"
// @Failure 403 {object} dto.ErrorResponse "Students cannot approve"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Failure 409 {object} dto.ErrorResponse "Activity already approved"
// @Router /activities/{id}/approve [post]
func (c *ActivityController) Approve(ctx *gin.Context) {
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

	activity, err := c.activityService.Approve(ctx.Request.Context(), actor, activityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: activity,
	})
}

// DownloadDocument serves the stored document of an activity
// @Summary Download an activity document
// @Description Staff download any document. A student's download is gated on approval; before approval the endpoint answers 403.
// @Tags activities
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {file} binary "Document content"
// @Failure 403 {object} dto.ErrorResponse "Document not yet downloadable"
// @Failure 404 {object} dto.ErrorResponse "Activity or document not found"
// @Router /activities/{id}/document [get]
func (c *ActivityController) DownloadDocument(ctx *gin.Context) {
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

	fileURL, err := c.activityService.DocumentURL(ctx.Request.Context(), actor, activityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.File(c.fileStorage.GetFullPath(fileURL))
}

// Stats returns aggregate counts over the caller's visible set
// @Summary Activity statistics
// @Description Counts always satisfy total = pending + approved. A student's response also carries the summed points of their approved activities.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Aggregate counts"
// @Router /activities/stats [get]
func (c *ActivityController) Stats(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.statsService.Overview(ctx.Request.Context(), actor)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to compute activity stats")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: stats,
	})
}
