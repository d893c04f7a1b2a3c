package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// ValidOrderStatus reports whether status is a known order state.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is one line of the JSONB items column.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	UnitPrice float64   `json:"unit_price"`
}

type Order struct {
	ID             uuid.UUID   `json:"id"`
	OrderID        string      `json:"order_id"`
	CustomerID     *uuid.UUID  `json:"customer_id,omitempty"`
	CustomerName   string      `json:"customer_name"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	DeliveryCharge float64     `json:"delivery_charge"`
	Total          float64     `json:"total"`
	PaymentMethod  string      `json:"payment_method"`
	PaymentStatus  string      `json:"payment_status"`
	OrderStatus    string      `json:"order_status"`
	TrackingID     *string     `json:"tracking_id,omitempty"`
	CourierName    *string     `json:"courier_name,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
