package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

func setupOrderService(t *testing.T) (*OrderService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewOrderService(db), mock
}

func orderRows(t *testing.T, o models.Order) *pgxmock.Rows {
	t.Helper()
	items, err := json.Marshal(o.Items)
	require.NoError(t, err)
	return pgxmock.NewRows([]string{
		"id", "order_id", "customer_id", "customer_name", "phone", "address",
		"items", "subtotal", "delivery_charge", "total",
		"payment_method", "payment_status", "order_status",
		"tracking_id", "courier_name", "notes", "created_at", "updated_at",
	}).AddRow(
		o.ID, o.OrderID, o.CustomerID, o.CustomerName, o.Phone, o.Address,
		items, o.Subtotal, o.DeliveryCharge, o.Total,
		o.PaymentMethod, o.PaymentStatus, o.OrderStatus,
		o.TrackingID, o.CourierName, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
}

func sampleOrder() models.Order {
	customerID := uuid.New()
	now := time.Now()
	return models.Order{
		ID:           uuid.New(),
		OrderID:      "ORD-AB12CD34",
		CustomerID:   &customerID,
		CustomerName: "Rahim Uddin",
		Phone:        "01712345678",
		Address:      "House 7, Road 3, Dhanmondi, Dhaka",
		Items: []models.OrderItem{
			{ProductID: uuid.New(), Name: "Premium Garam Masala", Qty: 2, UnitPrice: 450},
		},
		Subtotal:       900,
		DeliveryCharge: 50,
		Total:          950,
		PaymentMethod:  models.PaymentMethodCOD,
		PaymentStatus:  models.PaymentStatusUnpaid,
		OrderStatus:    models.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()

	assert.Len(t, id, 12)
	assert.Equal(t, "ORD-", id[:4])
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, GenerateOrderID())
}

func TestOrderService_Create(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()
	order := sampleOrder()

	mock.ExpectBegin()

	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs(order.CustomerName, order.Phone, order.Address).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(*order.CustomerID))

	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), *order.CustomerID, order.CustomerName, order.Phone, order.Address,
			pgxmock.AnyArg(), order.Subtotal, order.DeliveryCharge, order.Total,
			order.PaymentMethod, pgxmock.AnyArg()).
		WillReturnRows(orderRows(t, order))

	mock.ExpectCommit()

	created, err := svc.Create(ctx, CreateOrderParams{
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Address:        order.Address,
		Items:          order.Items,
		Subtotal:       order.Subtotal,
		DeliveryCharge: order.DeliveryCharge,
		PaymentMethod:  order.PaymentMethod,
	})

	require.NoError(t, err)
	assert.Equal(t, order.OrderID, created.OrderID)
	assert.Equal(t, order.Total, created.Total)
	assert.Len(t, created.Items, 1)
	assert.Equal(t, "Premium Garam Masala", created.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_Create_CustomerUpsertFails(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs(order.CustomerName, order.Phone, order.Address).
		WillReturnError(pgx.ErrTxClosed)
	mock.ExpectRollback()

	_, err := svc.Create(ctx, CreateOrderParams{
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Address:        order.Address,
		Items:          order.Items,
		Subtotal:       order.Subtotal,
		DeliveryCharge: order.DeliveryCharge,
		PaymentMethod:  order.PaymentMethod,
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_GetByID(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()
	order := sampleOrder()

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id`).
		WithArgs(order.ID).
		WillReturnRows(orderRows(t, order))

	got, err := svc.GetByID(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_List_Filtered(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()
	order := sampleOrder()

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE order_status = \$1 ORDER BY created_at DESC`).
		WithArgs(models.OrderStatusPending).
		WillReturnRows(orderRows(t, order))

	orders, err := svc.List(ctx, OrderFilter{OrderStatus: models.OrderStatusPending})

	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_UpdateStatus_DeliveredSettlesPayment(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()
	order := sampleOrder()
	order.OrderStatus = models.OrderStatusDelivered
	order.PaymentStatus = models.PaymentStatusPaid

	mock.ExpectQuery(`UPDATE orders`).
		WithArgs(models.OrderStatusDelivered, order.ID).
		WillReturnRows(orderRows(t, order))

	updated, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.OrderStatus)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_SetTracking(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()
	order := sampleOrder()
	trackingID := "TRK-555"
	courier := "Pathao"
	order.TrackingID = &trackingID
	order.CourierName = &courier

	mock.ExpectQuery(`UPDATE orders`).
		WithArgs(trackingID, courier, order.ID).
		WillReturnRows(orderRows(t, order))

	updated, err := svc.SetTracking(ctx, order.ID, trackingID, courier)

	require.NoError(t, err)
	require.NotNil(t, updated.TrackingID)
	assert.Equal(t, trackingID, *updated.TrackingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CountPending(t *testing.T) {
	svc, mock := setupOrderService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE order_status`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := svc.CountPending(ctx)

	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
