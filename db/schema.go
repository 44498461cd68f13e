package db

import (
	"context"
	"fmt"
)

// schemaStatements create the tables in dependency order. Stock carries a
// CHECK (stock >= 0) so a buggy code path can never persist a negative
// quantity, and the (school, name, size, color) tuple is unique so the order
// flows always bind to exactly one variant row.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schools (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		school_id BIGINT NOT NULL REFERENCES schools(id),
		phone TEXT,
		email TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		size TEXT NOT NULL,
		color TEXT NOT NULL,
		cost_price NUMERIC(10,2),
		sale_price NUMERIC(10,2) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		description TEXT,
		school_id BIGINT NOT NULL REFERENCES schools(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (school_id, name, size, color)
	)`,
	`CREATE TABLE IF NOT EXISTS sales_orders (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		school_id BIGINT NOT NULL REFERENCES schools(id),
		status TEXT NOT NULL DEFAULT 'Pendente',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		delivery_date_expected DATE,
		delivery_date_actual DATE,
		payment_method TEXT,
		quantity_total INTEGER NOT NULL,
		value_total NUMERIC(12,2) NOT NULL,
		notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sales_order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES sales_orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(10,2) NOT NULL,
		subtotal NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS production_orders (
		id BIGSERIAL PRIMARY KEY,
		school_id BIGINT NOT NULL REFERENCES schools(id),
		status TEXT NOT NULL DEFAULT 'Em Produção',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		delivery_date_expected DATE,
		completed_at TIMESTAMPTZ,
		quantity_total INTEGER NOT NULL,
		cost_total NUMERIC(12,2) NOT NULL,
		notes TEXT,
		priority TEXT NOT NULL DEFAULT 'Normal'
	)`,
	`CREATE TABLE IF NOT EXISTS production_order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES production_orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// seedStatements insert the reference data the system starts with.
var seedStatements = []string{
	`INSERT INTO schools (name) VALUES ('Municipal'), ('Desperta'), ('São Tadeu')
	 ON CONFLICT (name) DO NOTHING`,
}

// Migrate creates the schema and seed data if they do not exist. Safe to run
// on every startup.
func Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	for _, stmt := range seedStatements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run seed statement: %w", err)
		}
	}
	logger.Info().Msg("✓ Database schema up to date")
	return nil
}
