// Package realtime routes ephemeral notification events to the live
// WebSocket connections of a user. Rooms are keyed by user id; delivery is
// best-effort and process-local.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jobtrack/jobtrack/pkg/logger"
)

// Notification is the payload delivered to a user's room.
type Notification struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// envelope is the wire format for server-to-client messages.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// broadcastRequest pairs a notification with its destination room.
type broadcastRequest struct {
	room  string
	event *Notification
}

// Hub maintains active clients and broadcasts events to rooms.
// It is constructed at process start and torn down at shutdown; there is no
// ambient global registry.
type Hub struct {
	rooms      map[string]map[*Client]bool // user id -> clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastRequest
	mu         sync.RWMutex
	logger     *logger.Logger
}

// NewHub creates a new hub.
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastRequest, 256),
		logger:     logger,
	}
}

// Run starts the hub loop and blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info(context.Background(), "realtime hub starting")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info(context.Background(), "realtime hub stopping")
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case req := <-h.broadcast:
			h.deliver(req.room, req.event)
		}
	}
}

// Broadcast delivers event to every connection in the user's room.
// A room with no connections drops the event silently; there is no queueing
// or redelivery.
func (h *Hub) Broadcast(userID string, event *Notification) {
	select {
	case h.broadcast <- &broadcastRequest{room: userID, event: event}:
	default:
		h.logger.Warnf(context.Background(), "broadcast buffer full, dropping event for room %s", userID)
	}
}

// registerClient adds a client to its owner's room.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.userID] == nil {
		h.rooms[client.userID] = make(map[*Client]bool)
	}
	h.rooms[client.userID][client] = true

	h.logger.Infof(context.Background(), "client %s joined room %s (size %d)",
		client.id, client.userID, len(h.rooms[client.userID]))
}

// unregisterClient removes a client and cleans up its room.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[client.userID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.userID)
	}
	close(client.send)

	h.logger.Infof(context.Background(), "client %s left room %s", client.id, client.userID)
}

// deliver fans an event out to every connection in a room.
func (h *Hub) deliver(room string, event *Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	data, err := json.Marshal(&envelope{Type: "notification", Data: event})
	if err != nil {
		h.logger.Errorf(context.Background(), "failed to marshal notification: %v", err)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client buffer full, skip
			h.logger.Warnf(context.Background(), "client %s send buffer full, skipping", client.id)
		}
	}
}

// Stats returns room and client counts.
func (h *Hub) Stats() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	roomSizes := make(map[string]int, len(h.rooms))
	for room, clients := range h.rooms {
		roomSizes[room] = len(clients)
		total += len(clients)
	}

	return map[string]any{
		"total_clients": total,
		"total_rooms":   len(h.rooms),
		"rooms":         roomSizes,
	}
}
