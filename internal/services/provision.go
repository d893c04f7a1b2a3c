package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/urmedia/masala-api/internal/models"
)

var (
	// ErrOwnerExists means the one-shot owner bootstrap already ran.
	ErrOwnerExists = errors.New("owner already exists")
	// ErrRoleAssignFailed means the identity was created but the role row
	// could not be inserted; the identity has been deleted again.
	ErrRoleAssignFailed = errors.New("failed to assign role")
)

// ProvisionService creates admin accounts: identity, authoritative role
// row, and a best-effort display record. A role-assignment failure rolls
// the identity back so no identity is ever left without a role.
type ProvisionService struct {
	users  *UserService
	roles  *RoleService
	admins *AdminUserService
}

func NewProvisionService(users *UserService, roles *RoleService, admins *AdminUserService) *ProvisionService {
	return &ProvisionService{users: users, roles: roles, admins: admins}
}

// SetupOwner creates the first owner account. It refuses when any owner
// role row exists, so at most one bootstrap ever succeeds.
func (s *ProvisionService) SetupOwner(ctx context.Context, email, password, name string) (*models.User, error) {
	exists, err := s.roles.OwnerExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing owner: %w", err)
	}
	if exists {
		return nil, ErrOwnerExists
	}

	return s.createWithRole(ctx, email, password, name, models.RoleOwner)
}

// CreateAdmin provisions an account with the given role. Caller
// authorization (owner only) is enforced at the handler.
func (s *ProvisionService) CreateAdmin(ctx context.Context, email, password, name, role string) (*models.User, error) {
	return s.createWithRole(ctx, email, password, name, role)
}

func (s *ProvisionService) createWithRole(ctx context.Context, email, password, name, role string) (*models.User, error) {
	user, err := s.users.Create(ctx, email, name, password)
	if err != nil {
		return nil, err
	}

	if err := s.roles.Assign(ctx, user.ID, role); err != nil {
		// Compensating rollback: never leave an identity without a role.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			log.Printf("failed to roll back user %s after role assignment failure: %v", user.ID, delErr)
		}
		return nil, ErrRoleAssignFailed
	}

	// Display record only; a failure here must not fail the provisioning.
	if err := s.admins.Insert(ctx, name, email, role); err != nil {
		log.Printf("warning: failed to insert admin display record for %s: %v", email, err)
	}

	return user, nil
}
