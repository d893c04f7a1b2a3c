package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmedia/masala-api/internal/database"
)

func setupCustomerService(t *testing.T) (*CustomerService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewCustomerService(db), mock
}

func TestCustomerService_List(t *testing.T) {
	svc, mock := setupCustomerService(t)
	ctx := context.Background()
	address := "Mirpur, Dhaka"

	rows := pgxmock.NewRows([]string{"id", "name", "phone", "address", "total_orders", "created_at"}).
		AddRow(uuid.New(), "Rahim Uddin", "01712345678", &address, 3, time.Now()).
		AddRow(uuid.New(), "Karim Ahmed", "01898765432", (*string)(nil), 1, time.Now())

	mock.ExpectQuery(`SELECT .+ FROM customers`).
		WillReturnRows(rows)

	customers, err := svc.List(ctx, "")

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Rahim Uddin", customers[0].Name)
	assert.Equal(t, 3, customers[0].TotalOrders)
	assert.Nil(t, customers[1].Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerService_List_Search(t *testing.T) {
	svc, mock := setupCustomerService(t)
	ctx := context.Background()
	address := "Mirpur, Dhaka"

	rows := pgxmock.NewRows([]string{"id", "name", "phone", "address", "total_orders", "created_at"}).
		AddRow(uuid.New(), "Rahim Uddin", "01712345678", &address, 3, time.Now())

	mock.ExpectQuery(`SELECT .+ FROM customers\s+WHERE name ILIKE`).
		WithArgs("rahim").
		WillReturnRows(rows)

	customers, err := svc.List(ctx, "rahim")

	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupCustomerService(t)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM customers WHERE id`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, id)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
