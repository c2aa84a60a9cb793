package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/grocery-backend/internal/core/domain"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// CreateOrder runs the whole placement write set in one transaction: the
// order insert, one conditional stock decrement per line item, and the coin
// accrual upsert. A conditional decrement that touches no row either means
// the product is unknown (line skipped, name reported back) or exhausted
// (whole transaction fails with *domain.OutOfStockError).
func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order, coinsEarned int64) ([]string, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_email, items, total_price, payment_ref, payment_mode, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserEmail, items, order.TotalPrice, order.PaymentRef,
		order.PaymentMode, order.Status, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	var skipped []string
	for _, line := range order.Items {
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity - 1
			WHERE name = ? AND stock_quantity >= 1`,
			line.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			var known int
			err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM products WHERE name = ?`, line.ProductName,
			).Scan(&known)
			if err != nil {
				return nil, fmt.Errorf("check product: %w", err)
			}
			if known == 0 {
				// Unknown products never block placement.
				skipped = append(skipped, line.ProductName)
				continue
			}
			return nil, &domain.OutOfStockError{ProductName: line.ProductName}
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loyalty_profiles (user_email, coin_balance)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE coin_balance = coin_balance + ?`,
		order.UserEmail, coinsEarned, coinsEarned,
	)
	if err != nil {
		return nil, fmt.Errorf("accrue coins: %w", err)
	}

	return skipped, tx.Commit()
}

const orderColumns = `id, user_email, items, total_price, payment_ref, payment_mode, status, created_at`

func (m *MySQLAdapter) OrdersForUser(ctx context.Context, userEmail string) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE user_email = ?
		ORDER BY created_at DESC`, userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (m *MySQLAdapter) AllOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var items []byte
		err := rows.Scan(&o.ID, &o.UserEmail, &items, &o.TotalPrice,
			&o.PaymentRef, &o.PaymentMode, &o.Status, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, unit_price, stock_quantity, image_url
		FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLAdapter) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, title, image_url, position
		FROM banners ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("query banners: %w", err)
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.Position); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (m *MySQLAdapter) StockSnapshot(ctx context.Context) (map[string]int, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT name, stock_quantity FROM products`)
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[string]int)
	for rows.Next() {
		var name string
		var quantity int
		if err := rows.Scan(&name, &quantity); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		snapshot[name] = quantity
	}
	return snapshot, rows.Err()
}

func (m *MySQLAdapter) GetCoins(ctx context.Context, userEmail string) (int64, error) {
	var balance int64
	err := m.db.QueryRowContext(ctx,
		`SELECT coin_balance FROM loyalty_profiles WHERE user_email = ?`, userEmail,
	).Scan(&balance)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query coins: %w", err)
	}
	return balance, nil
}

func (m *MySQLAdapter) CreateUser(ctx context.Context, user domain.User) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, created_at)
		VALUES (?, ?, ?)`,
		user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT email, password_hash, created_at
		FROM users WHERE email = ?`, email,
	).Scan(&u.Email, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (m *MySQLAdapter) UpsertContact(ctx context.Context, contact domain.Contact) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO contacts (user_email, address, phone)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE address = ?, phone = ?`,
		contact.UserEmail, contact.Address, contact.Phone,
		contact.Address, contact.Phone,
	)
	if err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ContactByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	var c domain.Contact
	err := m.db.QueryRowContext(ctx, `
		SELECT user_email, address, phone
		FROM contacts WHERE user_email = ?`, email,
	).Scan(&c.UserEmail, &c.Address, &c.Phone)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return &c, nil
}
