package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Authoritative role relation: at most one role per user.
	`CREATE TABLE IF NOT EXISTS user_roles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL CHECK (role IN ('owner', 'admin', 'staff')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Display-only mirror of admin accounts. Not consulted for
	// authorization; user_roles is the source of truth.
	`CREATE TABLE IF NOT EXISTS admin_users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'staff',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		discount_price NUMERIC(10,2),
		stock_qty INTEGER NOT NULL DEFAULT 0,
		sku VARCHAR(100),
		image_url VARCHAR(500),
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(30) UNIQUE NOT NULL,
		address TEXT,
		total_orders INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id VARCHAR(30) UNIQUE NOT NULL,
		customer_id UUID REFERENCES customers(id) ON DELETE SET NULL,
		customer_name VARCHAR(255) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		address TEXT NOT NULL,
		items JSONB NOT NULL DEFAULT '[]',
		subtotal NUMERIC(10,2) NOT NULL,
		delivery_charge NUMERIC(10,2) NOT NULL,
		total NUMERIC(10,2) NOT NULL,
		payment_method VARCHAR(20) NOT NULL DEFAULT 'cod' CHECK (payment_method IN ('cod', 'online')),
		payment_status VARCHAR(20) NOT NULL DEFAULT 'unpaid' CHECK (payment_status IN ('unpaid', 'paid')),
		order_status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (order_status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled')),
		tracking_id VARCHAR(100),
		courier_name VARCHAR(100),
		notes TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tracking_events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL CHECK (status IN ('picked', 'in_transit', 'delivered', 'returned')),
		message TEXT,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		key VARCHAR(100) UNIQUE NOT NULL,
		value JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_roles_user_id ON user_roles(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_status ON orders(order_status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tracking_events_order_id ON tracking_events(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)`,

	// Seed the two settings blobs the admin panel edits.
	`INSERT INTO settings (key, value)
	VALUES ('delivery_charges', '{"dhaka": 50, "outside_dhaka": 100}')
	ON CONFLICT (key) DO NOTHING`,

	`INSERT INTO settings (key, value)
	VALUES ('store_info', '{"name": "UR Media", "phone": "", "email": "", "address": ""}')
	ON CONFLICT (key) DO NOTHING`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
