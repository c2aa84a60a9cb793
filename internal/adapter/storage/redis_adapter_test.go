package storage

import (
	"context"
	"os"
	"reflect"
	"sort"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/grocery-backend/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestDecrementStock_TakesOneUnit(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-salt")
	adapter.SetStock(ctx, "test-salt", 10)

	gate, err := adapter.DecrementStock(ctx, "test-salt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate != port.StockTaken {
		t.Errorf("expected StockTaken, got %v", gate)
	}

	stock, _ := client.Get(ctx, "stock:test-salt").Int()
	if stock != 9 {
		t.Errorf("expected stock 9, got %d", stock)
	}
}

func TestDecrementStock_SoldOut(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-salt")
	adapter.SetStock(ctx, "test-salt", 0)

	gate, err := adapter.DecrementStock(ctx, "test-salt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate != port.StockSoldOut {
		t.Errorf("expected StockSoldOut, got %v", gate)
	}

	stock, _ := client.Get(ctx, "stock:test-salt").Int()
	if stock != 0 {
		t.Errorf("expected stock unchanged at 0, got %d", stock)
	}
}

func TestDecrementStock_UnknownKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:never-seeded")

	gate, err := adapter.DecrementStock(ctx, "never-seeded")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate != port.StockUnknown {
		t.Errorf("expected StockUnknown, got %v", gate)
	}
}

func TestIncrementStock_RestoresUnits(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-salt")
	adapter.SetStock(ctx, "test-salt", 5)

	if _, err := adapter.DecrementStock(ctx, "test-salt"); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if err := adapter.IncrementStock(ctx, "test-salt", 1); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	stock, _ := client.Get(ctx, "stock:test-salt").Int()
	if stock != 5 {
		t.Errorf("expected stock restored to 5, got %d", stock)
	}
}

func TestSetIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "placed:test-pay-1")

	ok, err := adapter.SetIdempotency(ctx, "placed:test-pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected first set to succeed")
	}

	ok, err = adapter.SetIdempotency(ctx, "placed:test-pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second set to report duplicate")
	}

	// Releasing the key makes the ref usable again.
	if err := adapter.ReleaseIdempotency(ctx, "placed:test-pay-1"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	ok, err = adapter.SetIdempotency(ctx, "placed:test-pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected set after release to succeed")
	}
}

func TestWishlist_SetOperations(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "wishlist:test@example.com")

	for _, name := range []string{"Tata Salt", "Amul Milk", "Tata Salt"} {
		if err := adapter.AddWishlistItem(ctx, "test@example.com", name); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	items, err := adapter.ListWishlist(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	sort.Strings(items)
	if !reflect.DeepEqual(items, []string{"Amul Milk", "Tata Salt"}) {
		t.Errorf("unexpected wishlist: %v", items)
	}

	if err := adapter.RemoveWishlistItem(ctx, "test@example.com", "Amul Milk"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	items, _ = adapter.ListWishlist(ctx, "test@example.com")
	if !reflect.DeepEqual(items, []string{"Tata Salt"}) {
		t.Errorf("unexpected wishlist after remove: %v", items)
	}
}
