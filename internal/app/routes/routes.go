package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/anirudh/campuspoints/internal/app/controllers"
	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/app/models/dto"
	"github.com/anirudh/campuspoints/internal/middleware"
	"github.com/anirudh/campuspoints/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	activityController *controllers.ActivityController,
	counselingController *controllers.CounselingController,
	clubController *controllers.ClubController,
	participationController *controllers.ParticipationController,
	realtimeHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", authController.RegisterStudent)
		auth.POST("/register/counselor", authController.RegisterCounselor)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Activity routes: listing and stats are scoped per role inside
		// the service, so every authenticated actor may call them
		activities := authenticated.Group("/activities")
		{
			activities.GET("", activityController.List)
			activities.GET("/stats", activityController.Stats)
			activities.GET("/:id", activityController.Get)
			activities.GET("/:id/document", activityController.DownloadDocument)

			// Club-only insertion
			activitiesClubProtected := activities.Group("")
			activitiesClubProtected.Use(authMiddleware.RoleRequired(models.RoleClub))
			{
				activitiesClubProtected.POST("", activityController.Create)
			}

			// Staff-only approval and participation listing
			activitiesStaffProtected := activities.Group("")
			activitiesStaffProtected.Use(authMiddleware.StaffRequired())
			{
				activitiesStaffProtected.POST("/:id/approve", activityController.Approve)
				activitiesStaffProtected.GET("/:id/participations", participationController.ListByActivity)
			}
		}

		// Counseling routes (staff only)
		counseling := authenticated.Group("/counseling")
		counseling.Use(authMiddleware.StaffRequired())
		{
			counseling.GET("/students", counselingController.ListAssigned)
			counseling.POST("/students", counselingController.Assign)
			counseling.DELETE("/students/:usn", counselingController.Unassign)
			counseling.GET("/directory", counselingController.ListAllStudents)
		}

		// Club registry routes
		clubs := authenticated.Group("/clubs")
		{
			clubs.GET("", clubController.List)
			clubs.GET("/:id", clubController.Get)

			clubsStaffProtected := clubs.Group("")
			clubsStaffProtected.Use(authMiddleware.StaffRequired())
			{
				clubsStaffProtected.POST("", clubController.Create)
			}
		}

		// Participation routes
		participations := authenticated.Group("/participations")
		{
			participations.GET("/me", participationController.ListOwn)

			participationsClubProtected := participations.Group("")
			participationsClubProtected.Use(authMiddleware.RoleRequired(models.RoleClub))
			{
				participationsClubProtected.POST("", participationController.Record)
			}
		}

		// Change-feed subscriptions
		authenticated.GET("/ws/:collection", realtimeHandler.HandleConnection)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
