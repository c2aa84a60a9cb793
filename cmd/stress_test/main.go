// Oversell probe: fires concurrent placements for one product and checks
// that successes never exceed the starting stock.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-backend/internal/adapter/storage"
	"github.com/rl1809/grocery-backend/internal/config"
	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/core/service"
)

const (
	productName   = "Tata Salt"
	initialStock  = 20
	totalRequests = 50
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to open mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)

	if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	// Reset the probe product in both stores
	if _, err := db.ExecContext(ctx, `
		INSERT INTO products (name, unit_price, stock_quantity)
		VALUES (?, 25.00, ?)
		ON DUPLICATE KEY UPDATE stock_quantity = ?`,
		productName, initialStock, initialStock,
	); err != nil {
		log.Fatalf("failed to reset product: %v", err)
	}
	if err := redisAdapter.SetStock(ctx, productName, initialStock); err != nil {
		log.Fatalf("failed to set stock: %v", err)
	}

	orderService := service.NewOrderService(redisAdapter, mysqlAdapter, mysqlAdapter)

	var successCount atomic.Int32
	var soldOutCount atomic.Int32
	var otherCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()

			_, err := orderService.PlaceOrder(ctx, service.PlaceOrderInput{
				UserEmail:   fmt.Sprintf("stress-user-%d@example.com", userID),
				Items:       []domain.OrderLine{{ProductName: productName}},
				TotalPrice:  decimal.NewFromInt(25),
				PaymentRef:  uuid.NewString(),
				PaymentMode: domain.PaymentModeCashOnDelivery,
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case isOutOfStock(err):
				soldOutCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	var finalStock int
	if err := db.QueryRowContext(ctx,
		`SELECT stock_quantity FROM products WHERE name = ?`, productName,
	).Scan(&finalStock); err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}
	cachedStock, _ := rdb.Get(ctx, "stock:"+productName).Int()

	log.Printf("requests=%d success=%d sold_out=%d other=%d elapsed=%s",
		totalRequests, successCount.Load(), soldOutCount.Load(), otherCount.Load(), elapsed)
	log.Printf("final stock: mysql=%d redis=%d", finalStock, cachedStock)

	if successCount.Load() != initialStock || finalStock != 0 {
		log.Fatalf("OVERSELL CHECK FAILED: expected %d successes and 0 stock", initialStock)
	}
	log.Println("oversell check passed")
}

func isOutOfStock(err error) bool {
	var oos *domain.OutOfStockError
	return errors.As(err, &oos)
}
