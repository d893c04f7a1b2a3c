package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

// AdminUserService manages the display-only admin_users rows listed on the
// settings page. Authorization never reads this table.
type AdminUserService struct {
	db *database.DB
}

func NewAdminUserService(db *database.DB) *AdminUserService {
	return &AdminUserService{db: db}
}

func (s *AdminUserService) List(ctx context.Context) ([]models.AdminUser, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, email, role, created_at
		FROM admin_users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.AdminUser
	for rows.Next() {
		var a models.AdminUser
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (s *AdminUserService) Insert(ctx context.Context, name, email, role string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO admin_users (name, email, role)
		VALUES ($1, $2, $3)
	`, name, email, role)
	return err
}

func (s *AdminUserService) Update(ctx context.Context, id uuid.UUID, name, role string) (*models.AdminUser, error) {
	var a models.AdminUser
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE admin_users SET name = $1, role = $2
		WHERE id = $3
		RETURNING id, name, email, role, created_at
	`, name, role, id).Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminUserService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	return err
}
