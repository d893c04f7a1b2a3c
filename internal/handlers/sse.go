package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/middleware"
	"github.com/urmedia/masala-api/internal/sse"
)

type SSEHandler struct {
	hub          HubInterface
	orderService OrderServiceInterface
}

func NewSSEHandler(hub HubInterface, orderService OrderServiceInterface) *SSEHandler {
	return &SSEHandler{
		hub:          hub,
		orderService: orderService,
	}
}

// Connect streams order events to an authenticated admin client. The
// first event seeds the pending badge; order_created and order_updated
// events follow as they happen.
func (h *SSEHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	pending, err := h.orderService.CountPending(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to count pending orders")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:     clientID,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]any{
		"type":          "connected",
		"client_id":     clientID,
		"pending_count": pending,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
