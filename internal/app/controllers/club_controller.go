package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/services"
	"github.com/anirudh/campuspoints/internal/middleware"
)

// ClubController handles the club registry
type ClubController struct {
	clubService services.ClubService
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, logger zerolog.Logger) *ClubController {
	return &ClubController{
		clubService: clubService,
		logger:      logger,
	}
}

// List returns all registered clubs
// @Summary List clubs
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Clubs"
// @Router /clubs [get]
func (c *ClubController) List(ctx *gin.Context) {
	clubs, err := c.clubService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list clubs")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: clubs,
	})
}

// Get returns one club
// @Summary Get a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse "Club"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) Get(ctx *gin.Context) {
	club, err := c.clubService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: club,
	})
}

// Create registers a new club
// @Summary Register a club
// @Description The faculty coordinator must exist and must not already coordinate another club.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Club true "Club to register"
// @Success 201 {object} dto.APIResponse "Club registered"
// @Failure 404 {object} dto.ErrorResponse "Coordinator not found"
// @Failure 409 {object} dto.ErrorResponse "Coordinator already has a club"
// @Router /clubs [post]
func (c *ClubController) Create(ctx *gin.Context) {
	var club models.Club
	if err := ctx.ShouldBindJSON(&club); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.clubService.Create(ctx.Request.Context(), &club)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("clubId", created.ClubID).Msg("Club registered")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: created,
	})
}
