package port

import (
	"context"

	"github.com/rl1809/grocery-backend/internal/core/domain"
)

type DatabaseRepository interface {
	// CreateOrder persists the order, decrements one unit of stock per line
	// item and credits coinsEarned to the user's loyalty profile, all inside
	// a single transaction. A line naming an unknown product is skipped and
	// reported back in skipped; a known product with no stock left fails the
	// whole transaction with a *domain.OutOfStockError.
	CreateOrder(ctx context.Context, order domain.Order, coinsEarned int64) (skipped []string, err error)

	// OrdersForUser returns a user's orders, newest first.
	OrdersForUser(ctx context.Context, userEmail string) ([]domain.Order, error)

	// AllOrders returns every order, newest first.
	AllOrders(ctx context.Context) ([]domain.Order, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)

	// StockSnapshot returns current stock per product name, used to warm the cache.
	StockSnapshot(ctx context.Context) (map[string]int, error)

	// GetCoins returns the loyalty balance, 0 when no profile exists yet.
	GetCoins(ctx context.Context, userEmail string) (int64, error)
}

// DirectoryRepository holds account and contact records.
type DirectoryRepository interface {
	// CreateUser inserts a new account, domain-unique by email.
	CreateUser(ctx context.Context, user domain.User) error

	// UserByEmail returns nil when the account does not exist.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)

	UpsertContact(ctx context.Context, contact domain.Contact) error

	// ContactByEmail returns nil when the user has no contact record.
	ContactByEmail(ctx context.Context, email string) (*domain.Contact, error)
}
