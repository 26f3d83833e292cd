package notification

import (
	"context"
	"encoding/json"
)

// Client is one live websocket connection belonging to a user.
type Client struct {
	hub    *Hub
	conn   *Conn
	send   chan []byte
	userID string
}

// Hub fans notifications out to a user's live connections. Rows are durable
// in Postgres; the hub only handles live delivery.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Notification
	clients    map[string]map[*Client]bool
}

// NewHub creates an idle hub; call Run to start it.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Notification),
		clients:    make(map[string]map[*Client]bool),
	}
}

// Run owns the client registry until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[c.userID] = set
			}
			set[c] = true
		case c := <-h.unregister:
			if set, ok := h.clients[c.userID]; ok {
				if _, exists := set[c]; exists {
					delete(set, c)
					close(c.send)
				}
				if len(set) == 0 {
					delete(h.clients, c.userID)
				}
			}
		case n := <-h.broadcast:
			msg, _ := json.Marshal(n)
			if set, ok := h.clients[n.UserID.String()]; ok {
				for c := range set {
					select {
					case c.send <- msg:
					default:
						delete(set, c)
						close(c.send)
					}
				}
			}
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			return
		}
	}
}

// Broadcast queues a notification for the owner's live connections.
func (h *Hub) Broadcast(n *Notification) {
	go func() { h.broadcast <- n }()
}
