package websocket

import (
	"encoding/json"
	"sync"
)

// Hub is the connection registry: it maps user ids to their live
// channels so any component can push to a user without knowing which
// device the peer is on.
type Hub struct {
	clients    map[string]*Client
	userConns  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		userConns:  make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			if h.userConns[client.UserID] == nil {
				h.userConns[client.UserID] = make(map[*Client]bool)
			}
			h.userConns[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			// Idempotent: a stale or already-removed client is a no-op.
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				if h.userConns[client.UserID] != nil {
					delete(h.userConns[client.UserID], client)
					if len(h.userConns[client.UserID]) == 0 {
						delete(h.userConns, client.UserID)
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser fans the event out to every live channel of userID and
// reports whether at least one channel accepted the write. A channel
// whose buffer is full is treated as stale and unregistered. No channels
// means false; delivery is best-effort live, the caller has already
// persisted.
func (h *Hub) SendToUser(userID string, event Event) bool {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.userConns[userID]))
	for client := range h.userConns[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return false
	}

	data, err := json.Marshal(event)
	if err != nil {
		return false
	}

	delivered := false
	for _, client := range clients {
		select {
		case client.Send <- data:
			delivered = true
		default:
			h.unregister <- client
		}
	}
	return delivered
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userConns[userID]) > 0
}

var HubInstance *Hub

func InitHub() {
	HubInstance = NewHub()
	go HubInstance.Run()
}
