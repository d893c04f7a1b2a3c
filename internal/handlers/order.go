package handlers

import (
	"log"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/pkg/dto"
)

type OrderHandler struct {
	orderService    OrderServiceInterface
	productService  ProductServiceInterface
	settingsService SettingsServiceInterface
	hub             HubInterface
}

func NewOrderHandler(
	orderService OrderServiceInterface,
	productService ProductServiceInterface,
	settingsService SettingsServiceInterface,
	hub HubInterface,
) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		productService:  productService,
		settingsService: settingsService,
		hub:             hub,
	}
}

func effectivePrice(p *models.Product) float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}

// resolveItems re-prices every requested line from the catalog so the
// client can never dictate unit prices. An empty request falls back to a
// single unit of the first active product.
func (h *OrderHandler) resolveItems(c *drift.Context, reqItems []dto.OrderItemRequest) ([]models.OrderItem, bool) {
	ctx := c.Request.Context()

	if len(reqItems) == 0 {
		products, err := h.productService.List(ctx, true)
		if err != nil || len(products) == 0 {
			c.BadRequest("no products available to order")
			return nil, false
		}
		p := products[0]
		return []models.OrderItem{{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       1,
			UnitPrice: effectivePrice(&p),
		}}, true
	}

	items := make([]models.OrderItem, 0, len(reqItems))
	for _, item := range reqItems {
		if item.Qty <= 0 {
			c.BadRequest("item qty must be greater than zero")
			return nil, false
		}
		product, err := h.productService.GetByID(ctx, item.ProductID)
		if err != nil || product.Status != models.ProductStatusActive {
			c.BadRequest("unknown or unavailable product")
			return nil, false
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       item.Qty,
			UnitPrice: effectivePrice(product),
		})
	}
	return items, true
}

// Place is the public storefront checkout.
func (h *OrderHandler) Place(c *drift.Context) {
	var req dto.PlaceOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.CustomerName == "" || req.Phone == "" || req.Address == "" {
		c.BadRequest("customer_name, phone, and address are required")
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}
	if paymentMethod != models.PaymentMethodCOD && paymentMethod != models.PaymentMethodOnline {
		c.BadRequest("payment_method must be cod or online")
		return
	}

	items, ok := h.resolveItems(c, req.Items)
	if !ok {
		return
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Qty)
	}

	ctx := c.Request.Context()

	charges, err := h.settingsService.DeliveryCharges(ctx)
	if err != nil {
		c.InternalServerError("failed to load delivery charges")
		return
	}

	order, err := h.orderService.Create(ctx, services.CreateOrderParams{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Address:        req.Address,
		Items:          items,
		Subtotal:       subtotal,
		DeliveryCharge: charges.ChargeFor(req.Region),
		PaymentMethod:  paymentMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		c.InternalServerError("failed to place order")
		return
	}

	pending, err := h.orderService.CountPending(ctx)
	if err != nil {
		log.Printf("failed to count pending orders after %s: %v", order.OrderID, err)
	}
	h.hub.BroadcastOrderCreated(order.ID, order.OrderID, pending)

	_ = c.JSON(201, order)
}

func (h *OrderHandler) List(c *drift.Context) {
	filter := services.OrderFilter{
		Search:        c.QueryParam("search"),
		OrderStatus:   c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
	}

	if filter.OrderStatus != "" && !models.ValidOrderStatus(filter.OrderStatus) {
		c.BadRequest("invalid order status filter")
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		c.InternalServerError("failed to list orders")
		return
	}

	_ = c.JSON(200, orders)
}

// ListShipments backs the tracking board: only orders currently moving
// through the courier pipeline.
func (h *OrderHandler) ListShipments(c *drift.Context) {
	orders, err := h.orderService.List(c.Request.Context(), services.OrderFilter{
		Statuses: []string{models.OrderStatusProcessing, models.OrderStatusShipped},
	})
	if err != nil {
		c.InternalServerError("failed to list shipments")
		return
	}

	_ = c.JSON(200, orders)
}

func (h *OrderHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.BadRequest("invalid order id")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.NotFound("order not found")
		return
	}

	_ = c.JSON(200, order)
}

func (h *OrderHandler) UpdateStatus(c *drift.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.BadRequest("invalid order id")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		c.BadRequest("invalid order status")
		return
	}

	ctx := c.Request.Context()

	order, err := h.orderService.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		c.NotFound("order not found")
		return
	}

	pending, err := h.orderService.CountPending(ctx)
	if err != nil {
		log.Printf("failed to count pending orders after %s: %v", order.OrderID, err)
	}
	h.hub.BroadcastOrderUpdated(order.ID, order.OrderID, order.OrderStatus, pending)

	_ = c.JSON(200, order)
}

func (h *OrderHandler) UpdateTracking(c *drift.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.BadRequest("invalid order id")
		return
	}

	var req dto.UpdateTrackingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.TrackingID == "" {
		c.BadRequest("tracking_id is required")
		return
	}

	order, err := h.orderService.SetTracking(c.Request.Context(), id, req.TrackingID, req.CourierName)
	if err != nil {
		c.NotFound("order not found")
		return
	}

	_ = c.JSON(200, order)
}

// PendingCount serves the initial value of the sidebar badge; updates
// after that arrive over SSE.
func (h *OrderHandler) PendingCount(c *drift.Context) {
	count, err := h.orderService.CountPending(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to count pending orders")
		return
	}
	_ = c.JSON(200, map[string]int{"pending_count": count})
}
