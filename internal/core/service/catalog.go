package service

import (
	"context"
	"fmt"

	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/port"
)

// CatalogService serves the storefront read side and keeps the cache's
// stock view in line with the database.
type CatalogService struct {
	db    port.DatabaseRepository
	cache port.CacheRepository
}

func NewCatalogService(db port.DatabaseRepository, cache port.CacheRepository) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.db.ListProducts(ctx)
}

func (s *CatalogService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.db.ListBanners(ctx)
}

// SyncStockCache copies every product's stock into the cache. Run at boot
// so the placement gate starts from the database's view.
func (s *CatalogService) SyncStockCache(ctx context.Context) (int, error) {
	snapshot, err := s.db.StockSnapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("stock snapshot: %w", err)
	}
	for name, quantity := range snapshot {
		if err := s.cache.SetStock(ctx, name, quantity); err != nil {
			return 0, fmt.Errorf("warm stock for %s: %w", name, err)
		}
	}
	return len(snapshot), nil
}
