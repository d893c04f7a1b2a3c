package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/pkg/dto"
)

type TrackingHandler struct {
	trackingService TrackingServiceInterface
	orderService    OrderServiceInterface
}

func NewTrackingHandler(trackingService TrackingServiceInterface, orderService OrderServiceInterface) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		orderService:    orderService,
	}
}

func (h *TrackingHandler) List(c *drift.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.BadRequest("invalid order id")
		return
	}

	events, err := h.trackingService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		c.InternalServerError("failed to list tracking events")
		return
	}

	_ = c.JSON(200, events)
}

func (h *TrackingHandler) AddEvent(c *drift.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.BadRequest("invalid order id")
		return
	}

	var req dto.AddTrackingEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if !models.ValidTrackingStatus(req.Status) {
		c.BadRequest("invalid tracking status")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.orderService.GetByID(ctx, orderID); err != nil {
		c.NotFound("order not found")
		return
	}

	event, err := h.trackingService.AddEvent(ctx, orderID, req.Status, req.Message)
	if err != nil {
		c.InternalServerError("failed to add tracking event")
		return
	}

	_ = c.JSON(201, event)
}
