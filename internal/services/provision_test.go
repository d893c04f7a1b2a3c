package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

func setupProvisionService(t *testing.T) (*ProvisionService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	users := NewUserService(db)
	roles := NewRoleService(db)
	admins := NewAdminUserService(db)
	return NewProvisionService(users, roles, admins), mock
}

func userRow(userID uuid.UUID, email, name string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, email, name, "$2a$10$hash", now, now)
}

func TestProvisionService_SetupOwner(t *testing.T) {
	svc, mock := setupProvisionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(models.RoleOwner).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("owner@example.com", "Owner", pgxmock.AnyArg()).
		WillReturnRows(userRow(userID, "owner@example.com", "Owner"))

	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleOwner).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectExec(`INSERT INTO admin_users`).
		WithArgs("Owner", "owner@example.com", models.RoleOwner).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	user, err := svc.SetupOwner(ctx, "owner@example.com", "password123", "Owner")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionService_SetupOwner_OwnerExists(t *testing.T) {
	svc, mock := setupProvisionService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(models.RoleOwner).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.SetupOwner(ctx, "owner@example.com", "password123", "Owner")

	assert.ErrorIs(t, err, ErrOwnerExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionService_CreateAdmin(t *testing.T) {
	svc, mock := setupProvisionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("staff@example.com", "Staff Member", pgxmock.AnyArg()).
		WillReturnRows(userRow(userID, "staff@example.com", "Staff Member"))

	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleStaff).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectExec(`INSERT INTO admin_users`).
		WithArgs("Staff Member", "staff@example.com", models.RoleStaff).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	user, err := svc.CreateAdmin(ctx, "staff@example.com", "secret1", "Staff Member", models.RoleStaff)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionService_CreateAdmin_RoleAssignRollsBackUser(t *testing.T) {
	svc, mock := setupProvisionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("admin@example.com", "Admin", pgxmock.AnyArg()).
		WillReturnRows(userRow(userID, "admin@example.com", "Admin"))

	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleAdmin).
		WillReturnError(errors.New("constraint violation"))

	// The identity created above must be deleted again.
	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	_, err := svc.CreateAdmin(ctx, "admin@example.com", "secret1", "Admin", models.RoleAdmin)

	assert.ErrorIs(t, err, ErrRoleAssignFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionService_CreateAdmin_DisplayRecordFailureIsNotFatal(t *testing.T) {
	svc, mock := setupProvisionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("admin@example.com", "Admin", pgxmock.AnyArg()).
		WillReturnRows(userRow(userID, "admin@example.com", "Admin"))

	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleAdmin).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectExec(`INSERT INTO admin_users`).
		WithArgs("Admin", "admin@example.com", models.RoleAdmin).
		WillReturnError(errors.New("insert failed"))

	user, err := svc.CreateAdmin(ctx, "admin@example.com", "secret1", "Admin", models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
