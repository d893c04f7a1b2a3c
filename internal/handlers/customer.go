package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type CustomerHandler struct {
	customerService CustomerServiceInterface
	orderService    OrderServiceInterface
}

func NewCustomerHandler(customerService CustomerServiceInterface, orderService OrderServiceInterface) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		orderService:    orderService,
	}
}

func (h *CustomerHandler) List(c *drift.Context) {
	customers, err := h.customerService.List(c.Request.Context(), c.QueryParam("search"))
	if err != nil {
		c.InternalServerError("failed to list customers")
		return
	}
	_ = c.JSON(200, customers)
}

func (h *CustomerHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		c.BadRequest("invalid customer id")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.NotFound("customer not found")
		return
	}

	_ = c.JSON(200, customer)
}

// Orders returns a customer's order history, newest first.
func (h *CustomerHandler) Orders(c *drift.Context) {
	id, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		c.BadRequest("invalid customer id")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.customerService.GetByID(ctx, id); err != nil {
		c.NotFound("customer not found")
		return
	}

	orders, err := h.orderService.ListByCustomer(ctx, id)
	if err != nil {
		c.InternalServerError("failed to list customer orders")
		return
	}

	_ = c.JSON(200, orders)
}
