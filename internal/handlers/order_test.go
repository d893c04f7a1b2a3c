package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/pkg/dto"
	"github.com/urmedia/masala-api/tests/testutil"
)

func setupOrderTest(t *testing.T) (*testutil.MockOrderService, *testutil.MockProductService, *testutil.MockSettingsService, *testutil.MockHub, *OrderHandler) {
	t.Helper()
	mockOrderService := new(testutil.MockOrderService)
	mockProductService := new(testutil.MockProductService)
	mockSettingsService := new(testutil.MockSettingsService)
	mockHub := new(testutil.MockHub)
	handler := NewOrderHandler(mockOrderService, mockProductService, mockSettingsService, mockHub)
	return mockOrderService, mockProductService, mockSettingsService, mockHub, handler
}

func orderTestApp(handler *OrderHandler) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/orders", handler.Place)
	app.Get("/admin/orders", handler.List)
	app.Get("/admin/tracking/orders", handler.ListShipments)
	app.Get("/admin/orders/:orderId", handler.Get)
	app.Patch("/admin/orders/:orderId/status", handler.UpdateStatus)
	app.Patch("/admin/orders/:orderId/tracking", handler.UpdateTracking)
	return app
}

func placedOrder(items []models.OrderItem, subtotal, charge float64) *models.Order {
	customerID := uuid.New()
	now := time.Now()
	return &models.Order{
		ID:             uuid.New(),
		OrderID:        "ORD-AB12CD34",
		CustomerID:     &customerID,
		CustomerName:   "Rahim Uddin",
		Phone:          "01712345678",
		Address:        "House 7, Road 3, Dhanmondi, Dhaka",
		Items:          items,
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          subtotal + charge,
		PaymentMethod:  models.PaymentMethodCOD,
		PaymentStatus:  models.PaymentStatusUnpaid,
		OrderStatus:    models.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestOrderHandler_Place_DhakaCharge(t *testing.T) {
	mockOrderService, mockProductService, mockSettingsService, mockHub, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	productID := uuid.New()
	product := &models.Product{
		ID:     productID,
		Name:   "Premium Garam Masala",
		Price:  450,
		Status: models.ProductStatusActive,
	}
	items := []models.OrderItem{{ProductID: productID, Name: product.Name, Qty: 2, UnitPrice: 450}}
	order := placedOrder(items, 900, 50)

	mockProductService.On("GetByID", mock.Anything, productID).Return(product, nil)
	mockSettingsService.On("DeliveryCharges", mock.Anything).
		Return(models.DeliveryCharges{Dhaka: 50, OutsideDhaka: 100}, nil)
	mockOrderService.On("Create", mock.Anything, mock.MatchedBy(func(params services.CreateOrderParams) bool {
		return params.DeliveryCharge == 50 && params.Subtotal == 900
	})).Return(order, nil)
	mockOrderService.On("CountPending", mock.Anything).Return(4, nil)
	mockHub.On("BroadcastOrderCreated", order.ID, order.OrderID, 4).Return()

	rec := postJSON(t, app, "/orders", dto.PlaceOrderRequest{
		CustomerName:  "Rahim Uddin",
		Phone:         "01712345678",
		Address:       "House 7, Road 3, Dhanmondi, Dhaka",
		Region:        "dhaka",
		Items:         []dto.OrderItemRequest{{ProductID: productID, Qty: 2}},
		PaymentMethod: models.PaymentMethodCOD,
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, order.OrderID, resp.OrderID)
	assert.Equal(t, float64(950), resp.Total)

	mockOrderService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestOrderHandler_Place_OutsideDhakaCharge(t *testing.T) {
	mockOrderService, mockProductService, mockSettingsService, mockHub, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	productID := uuid.New()
	product := &models.Product{
		ID:     productID,
		Name:   "Premium Garam Masala",
		Price:  450,
		Status: models.ProductStatusActive,
	}
	items := []models.OrderItem{{ProductID: productID, Name: product.Name, Qty: 1, UnitPrice: 450}}
	order := placedOrder(items, 450, 100)

	mockProductService.On("GetByID", mock.Anything, productID).Return(product, nil)
	mockSettingsService.On("DeliveryCharges", mock.Anything).
		Return(models.DeliveryCharges{Dhaka: 50, OutsideDhaka: 100}, nil)
	mockOrderService.On("Create", mock.Anything, mock.MatchedBy(func(params services.CreateOrderParams) bool {
		return params.DeliveryCharge == 100
	})).Return(order, nil)
	mockOrderService.On("CountPending", mock.Anything).Return(1, nil)
	mockHub.On("BroadcastOrderCreated", order.ID, order.OrderID, 1).Return()

	rec := postJSON(t, app, "/orders", dto.PlaceOrderRequest{
		CustomerName: "Karim Ahmed",
		Phone:        "01898765432",
		Address:      "GEC Circle, Chittagong",
		Region:       "chittagong",
		Items:        []dto.OrderItemRequest{{ProductID: productID, Qty: 1}},
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockOrderService.AssertExpectations(t)
}

func TestOrderHandler_Place_ServerSidePricing(t *testing.T) {
	mockOrderService, mockProductService, mockSettingsService, mockHub, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	productID := uuid.New()
	discount := 400.0
	product := &models.Product{
		ID:            productID,
		Name:          "Premium Garam Masala",
		Price:         450,
		DiscountPrice: &discount,
		Status:        models.ProductStatusActive,
	}
	items := []models.OrderItem{{ProductID: productID, Name: product.Name, Qty: 1, UnitPrice: 400}}
	order := placedOrder(items, 400, 50)

	mockProductService.On("GetByID", mock.Anything, productID).Return(product, nil)
	mockSettingsService.On("DeliveryCharges", mock.Anything).
		Return(models.DeliveryCharges{Dhaka: 50, OutsideDhaka: 100}, nil)
	mockOrderService.On("Create", mock.Anything, mock.MatchedBy(func(params services.CreateOrderParams) bool {
		// The client-sent unit price is ignored; the catalog wins.
		return len(params.Items) == 1 && params.Items[0].UnitPrice == 400
	})).Return(order, nil)
	mockOrderService.On("CountPending", mock.Anything).Return(1, nil)
	mockHub.On("BroadcastOrderCreated", order.ID, order.OrderID, 1).Return()

	rec := postJSON(t, app, "/orders", dto.PlaceOrderRequest{
		CustomerName: "Rahim Uddin",
		Phone:        "01712345678",
		Address:      "Dhanmondi, Dhaka",
		Region:       "dhaka",
		Items:        []dto.OrderItemRequest{{ProductID: productID, Qty: 1, UnitPrice: 1}},
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockOrderService.AssertExpectations(t)
}

func TestOrderHandler_Place_MissingFields(t *testing.T) {
	mockOrderService, _, _, _, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	rec := postJSON(t, app, "/orders", dto.PlaceOrderRequest{
		CustomerName: "Rahim Uddin",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrderService.AssertNotCalled(t, "Create")
}

func TestOrderHandler_Place_UnknownProduct(t *testing.T) {
	mockOrderService, mockProductService, _, _, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	productID := uuid.New()
	mockProductService.On("GetByID", mock.Anything, productID).Return(nil, errors.New("no rows"))

	rec := postJSON(t, app, "/orders", dto.PlaceOrderRequest{
		CustomerName: "Rahim Uddin",
		Phone:        "01712345678",
		Address:      "Dhanmondi, Dhaka",
		Region:       "dhaka",
		Items:        []dto.OrderItemRequest{{ProductID: productID, Qty: 1}},
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrderService.AssertNotCalled(t, "Create")
}

func TestOrderHandler_UpdateStatus_BroadcastsWithPendingCount(t *testing.T) {
	mockOrderService, _, _, mockHub, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	order := placedOrder(nil, 450, 50)
	order.OrderStatus = models.OrderStatusProcessing

	mockOrderService.On("UpdateStatus", mock.Anything, order.ID, models.OrderStatusProcessing).Return(order, nil)
	mockOrderService.On("CountPending", mock.Anything).Return(2, nil)
	mockHub.On("BroadcastOrderUpdated", order.ID, order.OrderID, models.OrderStatusProcessing, 2).Return()

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.PATCH("/admin/orders/"+order.ID.String()+"/status",
		dto.UpdateOrderStatusRequest{Status: models.OrderStatusProcessing}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockHub.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	mockOrderService, _, _, _, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.PATCH("/admin/orders/"+uuid.New().String()+"/status",
		dto.UpdateOrderStatusRequest{Status: "teleported"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrderService.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderHandler_ListShipments_FiltersInTransitStatuses(t *testing.T) {
	mockOrderService, _, _, _, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	shipped := placedOrder(nil, 450, 50)
	shipped.OrderStatus = models.OrderStatusShipped

	mockOrderService.On("List", mock.Anything, services.OrderFilter{
		Statuses: []string{models.OrderStatusProcessing, models.OrderStatusShipped},
	}).Return([]models.Order{*shipped}, nil)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/admin/tracking/orders", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, models.OrderStatusShipped, resp[0].OrderStatus)

	mockOrderService.AssertExpectations(t)
}

func TestOrderHandler_List_InvalidStatusFilter(t *testing.T) {
	mockOrderService, _, _, _, handler := setupOrderTest(t)
	app := orderTestApp(handler)

	client := testutil.NewHTTPTestClient(t, app)
	rec := client.GET("/admin/orders?status=bogus", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrderService.AssertNotCalled(t, "List")
}
