package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP connections into change-feed subscriptions
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new websocket subscription handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to a collection change feed
// @Description Upgrades the HTTP connection to a WebSocket and streams invalidation events for the named collection
// @Tags realtime
// @Security BearerAuth
// @Param collection path string true "Collection name" Enums(activities, assignments)
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} gin.H "Unknown collection"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws/{collection} [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	collection := c.Param("collection")
	if collection != CollectionActivities && collection != CollectionAssignments {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown collection",
		})
		return
	}

	// Set by the auth middleware
	actorKey := c.GetString("actorKey")
	if actorKey == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Actor key not found in context",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, 64),
		actorKey:   actorKey,
		collection: collection,
		logger:     h.logger,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
