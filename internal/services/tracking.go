package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

type TrackingService struct {
	db *database.DB
}

func NewTrackingService(db *database.DB) *TrackingService {
	return &TrackingService{db: db}
}

func (s *TrackingService) AddEvent(ctx context.Context, orderID uuid.UUID, status string, message *string) (*models.TrackingEvent, error) {
	var e models.TrackingEvent
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO tracking_events (order_id, status, message)
		VALUES ($1, $2, $3)
		RETURNING id, order_id, status, message, timestamp
	`, orderID, status, message).Scan(&e.ID, &e.OrderID, &e.Status, &e.Message, &e.Timestamp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByOrder returns an order's courier events, newest first.
func (s *TrackingService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.TrackingEvent, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, order_id, status, message, timestamp
		FROM tracking_events
		WHERE order_id = $1
		ORDER BY timestamp DESC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.TrackingEvent
	for rows.Next() {
		var e models.TrackingEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Message, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
