package port

import "context"

// StockGate is the outcome of a cache-side stock reservation attempt.
type StockGate int

const (
	// StockTaken means one unit was atomically reserved in the cache.
	StockTaken StockGate = iota
	// StockSoldOut means the cache tracks the product and has no units left.
	StockSoldOut
	// StockUnknown means the cache has no entry for the product; the caller
	// decides against the system of record instead.
	StockUnknown
)

type CacheRepository interface {
	// DecrementStock atomically takes one unit of a product if available.
	DecrementStock(ctx context.Context, productName string) (StockGate, error)

	// IncrementStock restores units (compensation when a later phase fails)
	IncrementStock(ctx context.Context, productName string, units int) error

	// SetStock overwrites the cached quantity, used when warming from the database
	SetStock(ctx context.Context, productName string, quantity int) error

	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency removes an idempotency key so the request can be
	// retried after a failure that left nothing placed.
	ReleaseIdempotency(ctx context.Context, key string) error
}

// WishlistRepository keeps per-user wishlists. Listing is deterministic for
// repeated reads with no intervening writes.
type WishlistRepository interface {
	AddWishlistItem(ctx context.Context, userEmail, productName string) error
	RemoveWishlistItem(ctx context.Context, userEmail, productName string) error
	ListWishlist(ctx context.Context, userEmail string) ([]string, error)
}
