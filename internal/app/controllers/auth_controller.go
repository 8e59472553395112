// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/app/services"
	"github.com/anirudh/campuspoints/internal/middleware"
)

// AuthController handles registration, login and token refresh
type AuthController struct {
	identityService services.IdentityService
	logger          zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(identityService services.IdentityService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		identityService: identityService,
		logger:          logger,
	}
}

// RegisterStudent handles student signup
// @Summary Register a new student
// @Description Creates a student directory entry and login credentials keyed by email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or USN"
// @Failure 409 {object} dto.ErrorResponse "Email or USN already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register/student [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student registration payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actor, err := c.identityService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Student registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: actor,
	})
}

// RegisterCounselor handles counselor signup
// @Summary Register a new counselor
// @Description Creates a teacher directory entry and login credentials keyed by email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterCounselorRequest true "Counselor registration information"
// @Success 201 {object} dto.APIResponse "Counselor registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or teacher ID"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register/counselor [post]
func (c *AuthController) RegisterCounselor(ctx *gin.Context) {
	var req dto.RegisterCounselorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid counselor registration payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actor, err := c.identityService.RegisterCounselor(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Counselor registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: actor,
	})
}

// Login handles login for any role
// @Summary Login
// @Description Verifies credentials, resolves the email to a role-scoped actor and returns a token pair. An email found in neither directory answers 404 with a distinct code so clients can route the user to signup.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 404 {object} dto.ErrorResponse "No account found, sign up first"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokenResponse, err := c.identityService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("email", req.Email).
		Str("role", tokenResponse.Role).
		Msg("Actor logged in")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: tokenResponse,
	})
}

// RefreshToken trades a refresh token for a fresh pair
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token pair refreshed"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokenResponse, err := c.identityService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Token refresh failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: tokenResponse,
	})
}

// Me returns the resolved actor for the current token
// @Summary Current actor
// @Description Re-resolves the caller's email so the response reflects the current role, club attachment included.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Resolved actor"
// @Failure 404 {object} dto.ErrorResponse "No account found, sign up first"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resolved, err := c.identityService.Resolve(ctx.Request.Context(), actor.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: resolved,
	})
}
