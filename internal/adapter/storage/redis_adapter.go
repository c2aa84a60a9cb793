package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/grocery-backend/internal/port"
)

const (
	stockKeyPrefix    = "stock:"
	wishlistKeyPrefix = "wishlist:"
	idempotencyKeyTTL = 24 * time.Hour
)

// Takes exactly one unit. Returns 1 when a unit was taken, 0 when the
// product is tracked but exhausted, -1 when the key does not exist.
var decrementStockScript = redis.NewScript(`
local key = KEYS[1]

local current = redis.call('GET', key)
if not current then
	return -1
end

current = tonumber(current)
if current >= 1 then
	redis.call('DECRBY', key, 1)
	return 1
end

return 0
`)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) DecrementStock(ctx context.Context, productName string) (port.StockGate, error) {
	key := stockKeyPrefix + productName

	result, err := decrementStockScript.Run(ctx, r.client, []string{key}).Int()
	if err != nil {
		return port.StockUnknown, err
	}

	switch result {
	case 1:
		return port.StockTaken, nil
	case 0:
		return port.StockSoldOut, nil
	default:
		return port.StockUnknown, nil
	}
}

func (r *RedisAdapter) IncrementStock(ctx context.Context, productName string, units int) error {
	key := stockKeyPrefix + productName
	return r.client.IncrBy(ctx, key, int64(units)).Err()
}

func (r *RedisAdapter) SetStock(ctx context.Context, productName string, quantity int) error {
	key := stockKeyPrefix + productName
	return r.client.Set(ctx, key, quantity, 0).Err()
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisAdapter) AddWishlistItem(ctx context.Context, userEmail, productName string) error {
	return r.client.SAdd(ctx, wishlistKeyPrefix+userEmail, productName).Err()
}

func (r *RedisAdapter) RemoveWishlistItem(ctx context.Context, userEmail, productName string) error {
	return r.client.SRem(ctx, wishlistKeyPrefix+userEmail, productName).Err()
}

func (r *RedisAdapter) ListWishlist(ctx context.Context, userEmail string) ([]string, error) {
	return r.client.SMembers(ctx, wishlistKeyPrefix+userEmail).Result()
}
