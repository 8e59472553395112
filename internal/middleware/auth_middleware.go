package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/pkg/apperrors"
	"github.com/anirudh/campuspoints/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextKeyActor    = "actor"
	ContextKeyEmail    = "email"
	ContextKeyRole     = "role"
	ContextKeyActorKey = "actorKey"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer token and stores the resolved actor in
// the request context. The websocket endpoint also accepts the token as
// a query parameter since browsers cannot set headers on an upgrade.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && isWebsocketRoute(c) {
			if queryToken := c.Query("token"); queryToken != "" {
				authHeader = queryToken
			}
		}

		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			} else if errors.Is(err, auth.ErrInvalidFormat) {
				errorDetails = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		actor := models.Actor{
			Role:   models.Role(claims.Role),
			Key:    claims.Key,
			Email:  claims.Email,
			ClubID: claims.ClubID,
		}

		c.Set(ContextKeyActor, actor)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyActorKey, claims.Key)

		c.Next()
	}
}

// isWebsocketRoute reports whether the request targets a change-feed
// subscription endpoint. Only those accept the token as a query
// parameter; on ordinary routes a query token would end up in access
// logs.
func isWebsocketRoute(c *gin.Context) bool {
	return strings.Contains(c.FullPath(), "/ws/")
}

// RoleRequired ensures the authenticated actor carries one of the
// required roles. JWTAuth must have run first.
func (m *AuthMiddleware) RoleRequired(requiredRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyRole)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Actor role not found")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, ok := role.(string)
		if ok {
			for _, required := range requiredRoles {
				if models.Role(roleStr) == required {
					c.Next()
					return
				}
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// StaffRequired admits counselors and club coordinators
func (m *AuthMiddleware) StaffRequired() gin.HandlerFunc {
	return m.RoleRequired(models.RoleCounselor, models.RoleClub)
}

// ActorFromContext returns the actor stored by JWTAuth
func ActorFromContext(c *gin.Context) (models.Actor, error) {
	value, exists := c.Get(ContextKeyActor)
	if !exists {
		return models.Actor{}, apperrors.ErrTokenInvalid
	}

	actor, ok := value.(models.Actor)
	if !ok {
		return models.Actor{}, apperrors.ErrTokenInvalid
	}

	return actor, nil
}
