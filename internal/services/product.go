package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

type ProductService struct {
	db *database.DB
}

func NewProductService(db *database.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductParams struct {
	Name          string
	Price         float64
	DiscountPrice *float64
	StockQty      int
	SKU           *string
	ImageURL      *string
	Description   *string
	Status        string
}

const productColumns = `id, name, price, discount_price, stock_qty, sku, image_url, description, status, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Price, &p.DiscountPrice, &p.StockQty,
		&p.SKU, &p.ImageURL, &p.Description, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (s *ProductService) Create(ctx context.Context, params ProductParams) (*models.Product, error) {
	var p models.Product
	err := scanProduct(s.db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, price, discount_price, stock_qty, sku, image_url, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		params.Name, params.Price, params.DiscountPrice, params.StockQty,
		params.SKU, params.ImageURL, params.Description, params.Status,
	), &p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := scanProduct(s.db.Pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all products, newest first. When activeOnly is set only
// storefront-visible products are returned.
func (s *ProductService) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT ` + productColumns + ` FROM products WHERE status = 'active' ORDER BY created_at DESC`
	}

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, params ProductParams) (*models.Product, error) {
	var p models.Product
	err := scanProduct(s.db.Pool.QueryRow(ctx, `
		UPDATE products
		SET name = $1, price = $2, discount_price = $3, stock_qty = $4,
			sku = $5, image_url = $6, description = $7, status = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+productColumns,
		params.Name, params.Price, params.DiscountPrice, params.StockQty,
		params.SKU, params.ImageURL, params.Description, params.Status, id,
	), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Product, error) {
	var p models.Product
	err := scanProduct(s.db.Pool.QueryRow(ctx, `
		UPDATE products SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+productColumns,
		status, id,
	), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
