package dto

import "github.com/google/uuid"

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	UnitPrice float64   `json:"unit_price"`
}

// PlaceOrderRequest is the public storefront order form. Items may be
// omitted; the flat single-product order is assumed then.
type PlaceOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	Region        string             `json:"region"`
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	Notes         *string            `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdateTrackingRequest struct {
	TrackingID  string `json:"tracking_id"`
	CourierName string `json:"courier_name"`
}
