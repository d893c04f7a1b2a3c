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
	"golang.org/x/crypto/bcrypt"
)

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewUserService(db), mock
}

func TestUserService_Create(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, "staff@example.com", "Staff", "$2a$10$hash", now, now)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("staff@example.com", "Staff", pgxmock.AnyArg()).
		WillReturnRows(rows)

	user, err := svc.Create(ctx, "staff@example.com", "Staff", "secret123")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "staff@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_Valid(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, "owner@example.com", "Owner", string(hash), now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("owner@example.com").
		WillReturnRows(rows)

	user, err := svc.Authenticate(ctx, "owner@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow(uuid.New(), "owner@example.com", "Owner", string(hash), now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("owner@example.com").
		WillReturnRows(rows)

	_, err = svc.Authenticate(ctx, "owner@example.com", "wrong-password")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_UnknownEmail(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Authenticate(ctx, "ghost@example.com", "whatever")

	// Same error as a wrong password so callers cannot probe for accounts.
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Delete(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(ctx, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
