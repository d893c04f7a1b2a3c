package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
)

type OrderService struct {
	db *database.DB
}

func NewOrderService(db *database.DB) *OrderService {
	return &OrderService{db: db}
}

type CreateOrderParams struct {
	CustomerName   string
	Phone          string
	Address        string
	Items          []models.OrderItem
	Subtotal       float64
	DeliveryCharge float64
	PaymentMethod  string
	Notes          *string
}

// OrderFilter narrows List. Zero values mean "no filter".
type OrderFilter struct {
	Search        string
	OrderStatus   string
	PaymentStatus string
	Statuses      []string
}

const orderColumns = `id, order_id, customer_id, customer_name, phone, address, items, subtotal, delivery_charge, total, payment_method, payment_status, order_status, tracking_id, courier_name, notes, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }, o *models.Order) error {
	var items []byte
	if err := row.Scan(
		&o.ID, &o.OrderID, &o.CustomerID, &o.CustomerName, &o.Phone, &o.Address,
		&items, &o.Subtotal, &o.DeliveryCharge, &o.Total,
		&o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus,
		&o.TrackingID, &o.CourierName, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	return nil
}

// GenerateOrderID produces a public order reference like ORD-3FA85F64.
func GenerateOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// Create records a new order and upserts the customer by phone in the same
// transaction, bumping total_orders on repeat buyers.
func (s *OrderService) Create(ctx context.Context, params CreateOrderParams) (*models.Order, error) {
	itemsJSON, err := json.Marshal(params.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var customerID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address, total_orders)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address,
			total_orders = customers.total_orders + 1
		RETURNING id
	`, params.CustomerName, params.Phone, params.Address).Scan(&customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	total := params.Subtotal + params.DeliveryCharge

	var order models.Order
	err = scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders (order_id, customer_id, customer_name, phone, address, items, subtotal, delivery_charge, total, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+orderColumns,
		GenerateOrderID(), customerID, params.CustomerName, params.Phone, params.Address,
		itemsJSON, params.Subtotal, params.DeliveryCharge, total,
		params.PaymentMethod, params.Notes,
	), &order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := scanOrder(s.db.Pool.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1
	`, id), &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var conditions []string
	var args []any

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(order_id ILIKE '%%' || $%d || '%%' OR customer_name ILIKE '%%' || $%d || '%%' OR phone LIKE '%%' || $%d || '%%')`, n, n, n))
	}
	if filter.OrderStatus != "" {
		args = append(args, filter.OrderStatus)
		conditions = append(conditions, fmt.Sprintf(`order_status = $%d`, len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf(`payment_status = $%d`, len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		conditions = append(conditions, fmt.Sprintf(`order_status = ANY($%d)`, len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus moves an order to a new state. A COD order marked delivered
// while still unpaid settles to paid in the same update.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	var order models.Order
	err := scanOrder(s.db.Pool.QueryRow(ctx, `
		UPDATE orders
		SET order_status = $1,
			payment_status = CASE
				WHEN $1 = 'delivered' AND payment_status = 'unpaid' THEN 'paid'
				ELSE payment_status
			END,
			updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns,
		status, id,
	), &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) SetTracking(ctx context.Context, id uuid.UUID, trackingID, courierName string) (*models.Order, error) {
	var order models.Order
	err := scanOrder(s.db.Pool.QueryRow(ctx, `
		UPDATE orders
		SET tracking_id = $1, courier_name = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns,
		trackingID, courierName, id,
	), &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CountPending backs the admin shell's live badge.
func (s *OrderService) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders WHERE order_status = 'pending'
	`).Scan(&count)
	return count, err
}
