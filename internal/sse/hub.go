package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// OrderEvent notifies connected admin shells about order activity. The
// pending count rides along so the sidebar badge updates without a
// follow-up query.
type OrderEvent struct {
	OrderID      uuid.UUID `json:"order_id"`
	OrderRef     string    `json:"order_ref"`
	OrderStatus  string    `json:"order_status"`
	PendingCount int       `json:"pending_count"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

// Hub fans order events out to every connected admin client. It is owned
// by main and torn down with the process; clients are scoped to their
// request context.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(event)
			for _, client := range h.clients {
				select {
				case client.Send <- data:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) BroadcastOrderCreated(orderID uuid.UUID, orderRef string, pendingCount int) {
	h.broadcast <- Event{
		Type: "order_created",
		Data: OrderEvent{
			OrderID:      orderID,
			OrderRef:     orderRef,
			OrderStatus:  "pending",
			PendingCount: pendingCount,
		},
	}
}

func (h *Hub) BroadcastOrderUpdated(orderID uuid.UUID, orderRef, status string, pendingCount int) {
	h.broadcast <- Event{
		Type: "order_updated",
		Data: OrderEvent{
			OrderID:      orderID,
			OrderRef:     orderRef,
			OrderStatus:  status,
			PendingCount: pendingCount,
		},
	}
}
