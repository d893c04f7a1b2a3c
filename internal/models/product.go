package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	StockQty      int       `json:"stock_qty"`
	SKU           *string   `json:"sku,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
