package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/tests/testutil"
)

func newProvisionService(tdb *testutil.TestDB) (*services.ProvisionService, *services.RoleService, *services.UserService) {
	users := services.NewUserService(tdb.DB)
	roles := services.NewRoleService(tdb.DB)
	admins := services.NewAdminUserService(tdb.DB)
	return services.NewProvisionService(users, roles, admins), roles, users
}

func TestProvision_Integration_OwnerBootstrapIsOneShot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc, roles, _ := newProvisionService(tdb)
	ctx := context.Background()

	owner, err := svc.SetupOwner(ctx, "owner@example.com", "password123", "Shop Owner")
	require.NoError(t, err)
	assert.NotEmpty(t, owner.ID)

	role, err := roles.GetUserRole(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, role)

	// A second bootstrap must be refused no matter the credentials.
	_, err = svc.SetupOwner(ctx, "other@example.com", "password456", "Impostor")
	assert.ErrorIs(t, err, services.ErrOwnerExists)
}

func TestProvision_Integration_CreateAdminAndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc, roles, users := newProvisionService(tdb)
	ctx := context.Background()

	created, err := svc.CreateAdmin(ctx, "staff@example.com", "secret1", "Staff Member", models.RoleStaff)
	require.NoError(t, err)

	role, err := roles.GetUserRole(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, role)

	authed, err := users.Authenticate(ctx, "staff@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)

	_, err = users.Authenticate(ctx, "staff@example.com", "wrong")
	assert.Error(t, err)
}

func TestProvision_Integration_DuplicateEmailRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc, _, _ := newProvisionService(tdb)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "dup@example.com", "secret1", "First", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.CreateAdmin(ctx, "dup@example.com", "secret1", "Second", models.RoleStaff)
	assert.Error(t, err)
}
