package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

// SettingsService reads and writes the free-form JSONB blobs behind the
// settings page.
type SettingsService struct {
	db *database.DB
}

func NewSettingsService(db *database.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) get(ctx context.Context, key string, out any) error {
	var value []byte
	err := s.db.Pool.QueryRow(ctx, `
		SELECT value FROM settings WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, encoded)
	return err
}

// DeliveryCharges returns the configured per-region rates, falling back to
// the defaults when the row is missing.
func (s *SettingsService) DeliveryCharges(ctx context.Context) (models.DeliveryCharges, error) {
	var charges models.DeliveryCharges
	err := s.get(ctx, models.SettingDeliveryCharges, &charges)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultDeliveryCharges(), nil
	}
	if err != nil {
		return models.DeliveryCharges{}, err
	}
	return charges, nil
}

func (s *SettingsService) UpdateDeliveryCharges(ctx context.Context, charges models.DeliveryCharges) error {
	return s.set(ctx, models.SettingDeliveryCharges, charges)
}

func (s *SettingsService) StoreInfo(ctx context.Context) (models.StoreInfo, error) {
	var info models.StoreInfo
	err := s.get(ctx, models.SettingStoreInfo, &info)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.StoreInfo{}, nil
	}
	if err != nil {
		return models.StoreInfo{}, err
	}
	return info, nil
}

func (s *SettingsService) UpdateStoreInfo(ctx context.Context, info models.StoreInfo) error {
	return s.set(ctx, models.SettingStoreInfo, info)
}
