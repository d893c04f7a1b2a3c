package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

func setupSettingsService(t *testing.T) (*SettingsService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewSettingsService(db), mock
}

func TestSettingsService_DeliveryCharges(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"dhaka": 60, "outside_dhaka": 120}`))
	mock.ExpectQuery(`SELECT value FROM settings WHERE key`).
		WithArgs(models.SettingDeliveryCharges).
		WillReturnRows(rows)

	charges, err := svc.DeliveryCharges(ctx)

	require.NoError(t, err)
	assert.Equal(t, float64(60), charges.Dhaka)
	assert.Equal(t, float64(120), charges.OutsideDhaka)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_DeliveryCharges_MissingRowFallsBackToDefaults(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM settings WHERE key`).
		WithArgs(models.SettingDeliveryCharges).
		WillReturnError(pgx.ErrNoRows)

	charges, err := svc.DeliveryCharges(ctx)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultDeliveryCharges(), charges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_UpdateDeliveryCharges(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(models.SettingDeliveryCharges, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := svc.UpdateDeliveryCharges(ctx, models.DeliveryCharges{Dhaka: 70, OutsideDhaka: 130})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_StoreInfo(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"value"}).
		AddRow([]byte(`{"name": "Masala House", "phone": "01711111111", "email": "hello@example.com", "address": "Dhaka"}`))
	mock.ExpectQuery(`SELECT value FROM settings WHERE key`).
		WithArgs(models.SettingStoreInfo).
		WillReturnRows(rows)

	info, err := svc.StoreInfo(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Masala House", info.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryCharges_ChargeFor(t *testing.T) {
	charges := models.DeliveryCharges{Dhaka: 50, OutsideDhaka: 100}

	assert.Equal(t, float64(50), charges.ChargeFor("dhaka"))
	assert.Equal(t, float64(100), charges.ChargeFor("outside_dhaka"))
	assert.Equal(t, float64(100), charges.ChargeFor("chittagong"))
	assert.Equal(t, float64(100), charges.ChargeFor(""))
}
