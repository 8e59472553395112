// Package realtime fans out change-feed invalidation events to dashboard
// subscribers. Events are scoped to a collection name ("activities",
// "assignments"); fanout is deliberately unfiltered — every subscriber of a
// collection re-runs its own scoped query on receipt. Over-notification is
// acceptable, under-notification is not.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Collection names used across the application
const (
	CollectionActivities  = "activities"
	CollectionAssignments = "assignments"
)

// Hub maintains the set of active subscribers and broadcasts invalidation
// events to them
type Hub struct {
	// Registered clients organized by collection name
	clients map[string]map[*Client]bool

	// Channel for outbound invalidation events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for event listeners
	listenersMu sync.RWMutex

	// In-process event listeners (no websocket attached)
	eventListeners []chan *Event

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event represents a single change-feed invalidation
type Event struct {
	// Collection that changed: "activities" or "assignments"
	Collection string `json:"collection"`

	// Action taken: "create", "approve", "assign", "unassign"
	Action string `json:"action"`

	// ID of the changed row, when known
	ID string `json:"id,omitempty"`

	// Timestamp when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:      make(chan *Event),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		clients:        make(map[string]map[*Client]bool),
		eventListeners: []chan *Event{},
		logger:         logger,
	}
}

// Run starts the hub, handling registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient registers a new subscriber to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	collection := client.collection
	if _, ok := h.clients[collection]; !ok {
		h.clients[collection] = make(map[*Client]bool)
	}
	h.clients[collection][client] = true

	h.logger.Info().
		Str("collection", collection).
		Str("actorKey", client.actorKey).
		Msg("Subscriber registered")
}

// unregisterClient unregisters a subscriber from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	collection := client.collection
	if _, ok := h.clients[collection]; ok {
		if _, ok := h.clients[collection][client]; ok {
			delete(h.clients[collection], client)
			close(client.send)

			if len(h.clients[collection]) == 0 {
				delete(h.clients, collection)
			}

			h.logger.Info().
				Str("collection", collection).
				Str("actorKey", client.actorKey).
				Msg("Subscriber unregistered")
		}
	}
}

// broadcastEvent broadcasts an invalidation to every subscriber of the
// event's collection. Subscribers whose send buffer is full are dropped so a
// slow dashboard can never block the fanout.
func (h *Hub) broadcastEvent(event *Event) {
	h.notifyEventListeners(event)

	h.mu.RLock()

	clients, ok := h.clients[event.Collection]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("collection", event.Collection).
			Msg("No subscribers for invalidation")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Str("collection", event.Collection).
			Msg("Failed to marshal invalidation event")
		return
	}

	// Slow subscribers are collected here and dropped after the loop.
	// Sending to h.unregister from this goroutine would deadlock: Run is
	// the only receiver and it is blocked inside this call.
	var doomed []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			doomed = append(doomed, client)
		}
	}
	delivered := len(clients) - len(doomed)
	h.mu.RUnlock()

	for _, client := range doomed {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("collection", event.Collection).
		Str("action", event.Action).
		Int("subscriberCount", delivered).
		Msg("Invalidation broadcast")
}

// notifyEventListeners sends an event to all registered in-process listeners
func (h *Hub) notifyEventListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.eventListeners {
		// Non-blocking send so a slow listener cannot stall the hub
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// Publish queues an invalidation event for broadcast
func (h *Hub) Publish(collection, action, id string) {
	h.broadcast <- &Event{
		Collection: collection,
		Action:     action,
		ID:         id,
		Timestamp:  time.Now(),
	}
}

// SubscriberCount returns the number of active subscribers for a collection
func (h *Hub) SubscriberCount(collection string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[collection]; ok {
		return len(clients)
	}
	return 0
}

// AddEventListener registers a channel to receive all events
func (h *Hub) AddEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.eventListeners = append(h.eventListeners, listener)
}

// RemoveEventListener removes a listener from the hub
func (h *Hub) RemoveEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.eventListeners {
		if l == listener {
			h.eventListeners[i] = h.eventListeners[len(h.eventListeners)-1]
			h.eventListeners = h.eventListeners[:len(h.eventListeners)-1]
			break
		}
	}
}
