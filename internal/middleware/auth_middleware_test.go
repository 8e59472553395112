package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anirudh/campuspoints/internal/app/models"
	"github.com/anirudh/campuspoints/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func testRouter(jwtService *auth.JWTService, captured *models.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	authed := router.Group("", m.JWTAuth())
	handler := func(c *gin.Context) {
		actor, err := ActorFromContext(c)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		*captured = actor
		c.Status(http.StatusOK)
	}
	authed.GET("/activities", handler)
	authed.GET("/ws/:collection", handler)
	return router
}

func TestJWTAuthRestoresClubActor(t *testing.T) {
	jwtService := testJWTService()
	clubID := "robotics"
	issued := models.Actor{Role: models.RoleClub, Key: "T202", Email: "coordinator@college.edu", ClubID: &clubID}

	token, _, _, _, err := jwtService.GenerateTokenPair(issued)
	if err != nil {
		t.Fatal(err)
	}

	var actor models.Actor
	router := testRouter(jwtService, &actor)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if actor.Role != models.RoleClub || actor.Key != "T202" {
		t.Errorf("actor = %+v, want club T202", actor)
	}
	if actor.ClubID == nil || *actor.ClubID != clubID {
		t.Errorf("actor.ClubID = %v, want %q; a club actor without its club cannot insert activities", actor.ClubID, clubID)
	}
}

func TestJWTAuthQueryTokenScopedToWebsocket(t *testing.T) {
	jwtService := testJWTService()
	issued := models.Actor{Role: models.RoleStudent, Key: "1RV22CS001", Email: "asha@college.edu"}

	token, _, _, _, err := jwtService.GenerateTokenPair(issued)
	if err != nil {
		t.Fatal(err)
	}

	var actor models.Actor
	router := testRouter(jwtService, &actor)

	t.Run("websocket route accepts query token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ws/activities?token="+token, nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if actor.Key != issued.Key {
			t.Errorf("actor key = %s, want %s", actor.Key, issued.Key)
		}
	})

	t.Run("ordinary route rejects query token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/activities?token="+token, nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
