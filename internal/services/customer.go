package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

type CustomerService struct {
	db *database.DB
}

func NewCustomerService(db *database.DB) *CustomerService {
	return &CustomerService{db: db}
}

// List returns customers, newest first. A non-empty search matches name or
// phone.
func (s *CustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	query := `
		SELECT id, name, phone, address, total_orders, created_at
		FROM customers
		ORDER BY created_at DESC`
	args := []any{}
	if search != "" {
		query = `
		SELECT id, name, phone, address, total_orders, created_at
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
		ORDER BY created_at DESC`
		args = append(args, search)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.TotalOrders, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, phone, address, total_orders, created_at
		FROM customers WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.TotalOrders, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
