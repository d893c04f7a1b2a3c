package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TrackingStatusPicked    = "picked"
	TrackingStatusInTransit = "in_transit"
	TrackingStatusDelivered = "delivered"
	TrackingStatusReturned  = "returned"
)

// ValidTrackingStatus reports whether status is a known courier event type.
func ValidTrackingStatus(status string) bool {
	switch status {
	case TrackingStatusPicked, TrackingStatusInTransit,
		TrackingStatusDelivered, TrackingStatusReturned:
		return true
	}
	return false
}

type TrackingEvent struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Status    string    `json:"status"`
	Message   *string   `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
