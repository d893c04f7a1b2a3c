package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     *string   `json:"address,omitempty"`
	TotalOrders int       `json:"total_orders"`
	CreatedAt   time.Time `json:"created_at"`
}
