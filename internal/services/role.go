package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

// RoleService is the authoritative role store: user_roles holds at most
// one row per identity.
type RoleService struct {
	db *database.DB
}

func NewRoleService(db *database.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) Assign(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
	`, userID, role)
	return err
}

// GetUserRole returns the user's role, or "" when no role row exists.
func (s *RoleService) GetUserRole(ctx context.Context, userID uuid.UUID) (string, error) {
	var role string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT role FROM user_roles WHERE user_id = $1
	`, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *RoleService) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)
	`, userID, role).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// IsAdmin reports whether the user holds any admin-panel role.
func (s *RoleService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	role, err := s.GetUserRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// OwnerExists guards the one-shot owner bootstrap.
func (s *RoleService) OwnerExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_roles WHERE role = $1)
	`, models.RoleOwner).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *RoleService) Remove(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
	return err
}
