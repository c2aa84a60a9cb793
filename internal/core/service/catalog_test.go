package service

import (
	"context"
	"testing"
)

func TestSyncStockCache(t *testing.T) {
	cache := newMockCacheRepo()
	db := newMockDatabaseRepo()
	db.stock["Tata Salt"] = 7
	db.stock["Amul Milk"] = 0

	svc := NewCatalogService(db, cache)

	warmed, err := svc.SyncStockCache(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if warmed != 2 {
		t.Errorf("expected 2 products warmed, got %d", warmed)
	}
	if cache.stock["Tata Salt"] != 7 {
		t.Errorf("expected cached salt stock 7, got %d", cache.stock["Tata Salt"])
	}
	if got, ok := cache.stock["Amul Milk"]; !ok || got != 0 {
		t.Errorf("expected zero-stock product cached as 0, got %d (present=%v)", got, ok)
	}
}
