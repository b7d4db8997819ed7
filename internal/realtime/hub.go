package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts task events to them.
// Construct one per server with New; the store publishes through it.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{
		userIdToClients: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// Broadcast sends a message to all clients of a user.
func (h *Hub) Broadcast(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.userIdToClients[userID]
	for c := range clients {
		if ok := c.Send(message); !ok {
			// client write failed; let the handler clean it up on its side
		}
	}
}
