package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/database"
	"github.com/urmedia/masala-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}
	password := "password123"

	for _, opt := range opts {
		opt(user, &password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at, updated_at
	`, user.Email, user.Name, string(hash)).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User, *string)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User, _ *string) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User, _ *string) {
		u.Name = name
	}
}

// WithPassword sets the user's password
func WithPassword(password string) UserOption {
	return func(_ *models.User, p *string) {
		*p = password
	}
}

// AssignRole gives a user an admin-panel role
func (f *Fixtures) AssignRole(t *testing.T, user *models.User, role string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
	`, user.ID, role)
	if err != nil {
		t.Fatalf("failed to assign role: %v", err)
	}
}

// CreateProduct creates a test product
func (f *Fixtures) CreateProduct(t *testing.T, opts ...ProductOption) *models.Product {
	t.Helper()
	f.counter++

	product := &models.Product{
		Name:     fmt.Sprintf("Test Masala %d", f.counter),
		Price:    450,
		StockQty: 100,
		Status:   models.ProductStatusActive,
	}

	for _, opt := range opts {
		opt(product)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, price, discount_price, stock_qty, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, product.Name, product.Price, product.DiscountPrice, product.StockQty, product.Status).Scan(
		&product.ID, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}

// ProductOption configures a test product
type ProductOption func(*models.Product)

// WithProductName sets the product name
func WithProductName(name string) ProductOption {
	return func(p *models.Product) {
		p.Name = name
	}
}

// WithPrice sets the product price
func WithPrice(price float64) ProductOption {
	return func(p *models.Product) {
		p.Price = price
	}
}

// WithDiscountPrice sets a discounted price
func WithDiscountPrice(price float64) ProductOption {
	return func(p *models.Product) {
		p.DiscountPrice = &price
	}
}

// WithStatus sets the product status
func WithStatus(status string) ProductOption {
	return func(p *models.Product) {
		p.Status = status
	}
}

// CreateOrder creates a test order with its customer upsert
func (f *Fixtures) CreateOrder(t *testing.T, opts ...OrderOption) *models.Order {
	t.Helper()
	f.counter++

	order := &models.Order{
		OrderID:      fmt.Sprintf("ORD-TEST%04d", f.counter),
		CustomerName: fmt.Sprintf("Customer %d", f.counter),
		Phone:        fmt.Sprintf("01%09d", f.counter),
		Address:      "House 1, Road 1, Dhaka",
		Items: []models.OrderItem{
			{ProductID: uuid.New(), Name: "Test Masala", Qty: 1, UnitPrice: 450},
		},
		Subtotal:       450,
		DeliveryCharge: 50,
		Total:          500,
		PaymentMethod:  models.PaymentMethodCOD,
	}

	for _, opt := range opts {
		opt(order)
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		t.Fatalf("failed to encode items: %v", err)
	}

	ctx := context.Background()

	var customerID uuid.UUID
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address, total_orders)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (phone) DO UPDATE SET total_orders = customers.total_orders + 1
		RETURNING id
	`, order.CustomerName, order.Phone, order.Address).Scan(&customerID)
	if err != nil {
		t.Fatalf("failed to upsert customer: %v", err)
	}
	order.CustomerID = &customerID

	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO orders (order_id, customer_id, customer_name, phone, address, items, subtotal, delivery_charge, total, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, payment_status, order_status, created_at, updated_at
	`, order.OrderID, customerID, order.CustomerName, order.Phone, order.Address,
		itemsJSON, order.Subtotal, order.DeliveryCharge, order.Total, order.PaymentMethod).Scan(
		&order.ID, &order.PaymentStatus, &order.OrderStatus, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	return order
}

// OrderOption configures a test order
type OrderOption func(*models.Order)

// WithCustomer sets the customer name and phone
func WithCustomer(name, phone string) OrderOption {
	return func(o *models.Order) {
		o.CustomerName = name
		o.Phone = phone
	}
}

// WithItems sets the order items and recomputes totals
func WithItems(items []models.OrderItem) OrderOption {
	return func(o *models.Order) {
		o.Items = items
		o.Subtotal = 0
		for _, item := range items {
			o.Subtotal += item.UnitPrice * float64(item.Qty)
		}
		o.Total = o.Subtotal + o.DeliveryCharge
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
