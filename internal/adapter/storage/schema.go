package storage

import (
	"context"
	"fmt"

	"github.com/rl1809/grocery-backend/internal/core/domain"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(191) NOT NULL UNIQUE,
		unit_price DECIMAL(10,2) NOT NULL,
		stock_quantity INT NOT NULL DEFAULT 0,
		image_url VARCHAR(512) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(36) PRIMARY KEY,
		user_email VARCHAR(191) NOT NULL,
		items JSON NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		payment_ref VARCHAR(191) NOT NULL DEFAULT '',
		payment_mode VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		KEY idx_orders_user_created (user_email, created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS loyalty_profiles (
		user_email VARCHAR(191) PRIMARY KEY,
		coin_balance BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		email VARCHAR(191) PRIMARY KEY,
		password_hash VARCHAR(100) NOT NULL,
		created_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		user_email VARCHAR(191) PRIMARY KEY,
		address VARCHAR(512) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS banners (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(191) NOT NULL,
		image_url VARCHAR(512) NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates the tables the adapter expects. Safe to run on every
// boot.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedCatalog inserts products that are not in the catalog yet. Existing
// rows, including their stock, are left untouched.
func (m *MySQLAdapter) SeedCatalog(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		_, err := m.db.ExecContext(ctx, `
			INSERT IGNORE INTO products (name, unit_price, stock_quantity, image_url)
			VALUES (?, ?, ?, ?)`,
			p.Name, p.UnitPrice, p.StockQuantity, p.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	return nil
}

// SeedBanners inserts banners when the table is empty.
func (m *MySQLAdapter) SeedBanners(ctx context.Context, banners []domain.Banner) error {
	var count int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM banners`).Scan(&count); err != nil {
		return fmt.Errorf("count banners: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, b := range banners {
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO banners (title, image_url, position) VALUES (?, ?, ?)`,
			b.Title, b.ImageURL, b.Position,
		)
		if err != nil {
			return fmt.Errorf("seed banner %s: %w", b.Title, err)
		}
	}
	return nil
}
