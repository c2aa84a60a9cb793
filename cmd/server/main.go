package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-backend/internal/adapter/handler"
	"github.com/rl1809/grocery-backend/internal/adapter/storage"
	"github.com/rl1809/grocery-backend/internal/config"
	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/core/service"
	"github.com/rl1809/grocery-backend/internal/obs"
)

// Default catalog, inserted only when the products table does not have the
// row yet.
var seedProducts = []domain.Product{
	{Name: "Fresh Apples", UnitPrice: decimal.NewFromInt(120), StockQuantity: 100, ImageURL: "https://placehold.co/400x400/png?text=Apples"},
	{Name: "Aashirvaad Atta", UnitPrice: decimal.NewFromInt(240), StockQuantity: 100, ImageURL: "https://placehold.co/400x400/png?text=Atta"},
	{Name: "Amul Milk", UnitPrice: decimal.NewFromInt(32), StockQuantity: 100, ImageURL: "https://placehold.co/400x400/png?text=Milk"},
	{Name: "Dark Fantasy", UnitPrice: decimal.NewFromInt(40), StockQuantity: 100, ImageURL: "https://placehold.co/400x400/png?text=Choco"},
	{Name: "Tata Salt", UnitPrice: decimal.NewFromInt(25), StockQuantity: 100, ImageURL: "https://placehold.co/400x400/png?text=Salt"},
}

var seedBanners = []domain.Banner{
	{Title: "Fresh fruits, 20% off this week", ImageURL: "https://placehold.co/800x300/png?text=Fruits", Position: 1},
	{Title: "Free delivery on orders above 500", ImageURL: "https://placehold.co/800x300/png?text=Delivery", Position: 2},
}

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		fatal("mysql_open_failed", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		fatal("mysql_ping_failed", err)
	}
	obs.Logger.Info("mysql_connected")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.RedisPoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		fatal("redis_ping_failed", err)
	}
	obs.Logger.Info("redis_connected")

	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)

	if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
		fatal("schema_failed", err)
	}
	if err := mysqlAdapter.SeedCatalog(ctx, seedProducts); err != nil {
		fatal("seed_catalog_failed", err)
	}
	if err := mysqlAdapter.SeedBanners(ctx, seedBanners); err != nil {
		fatal("seed_banners_failed", err)
	}

	orderService := service.NewOrderService(redisAdapter, mysqlAdapter, mysqlAdapter)
	catalogService := service.NewCatalogService(mysqlAdapter, redisAdapter)
	accountService := service.NewAccountService(mysqlAdapter, cfg.TokenSecret, cfg.TokenTTL)
	wishlistService := service.NewWishlistService(redisAdapter)

	warmed, err := catalogService.SyncStockCache(ctx)
	if err != nil {
		fatal("stock_warm_failed", err)
	}
	obs.Logger.Info("stock_cache_warmed", "products", warmed)

	httpHandler := handler.NewHTTPHandler(orderService, catalogService, accountService, wishlistService, cfg.TokenSecret)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Routes(),
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			fatal("http_server_error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	obs.Logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("http_server_stopped")

	rdb.Close()
	db.Close()
	obs.Logger.Info("connections_closed")
}

func fatal(msg string, err error) {
	obs.Logger.Error(msg, "error", err)
	os.Exit(1)
}
