package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/obs"
	"github.com/rl1809/grocery-backend/internal/port"
)

var (
	ErrDuplicateRequest = errors.New("duplicate request")
	ErrEmptyOrder       = errors.New("order has no items")
	ErrMissingEmail     = errors.New("user email is required")
	ErrNegativeTotal    = errors.New("total price must not be negative")
)

// OrderService owns order placement and the order read side. Placement is
// the only writer of product stock and loyalty balances.
type OrderService struct {
	cache port.CacheRepository
	db    port.DatabaseRepository
	dir   port.DirectoryRepository
}

func NewOrderService(cache port.CacheRepository, db port.DatabaseRepository, dir port.DirectoryRepository) *OrderService {
	return &OrderService{cache: cache, db: db, dir: dir}
}

type PlaceOrderInput struct {
	UserEmail   string
	Items       []domain.OrderLine
	TotalPrice  decimal.Decimal
	PaymentRef  string
	PaymentMode domain.PaymentMode
}

type PlaceOrderResult struct {
	OrderID     string
	CoinsEarned int64
}

// PlaceOrder verifies and reserves stock, persists the order, and credits
// loyalty coins. The cache gate takes one unit per line up front; the
// database applies the order insert, the stock decrements and the coin
// accrual in a single transaction. When the transaction fails, every unit
// taken from the cache is put back.
//
// A line naming a product neither the cache nor the database knows is
// skipped rather than rejected: unknown products never block placement.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error) {
	if in.UserEmail == "" {
		return PlaceOrderResult{}, ErrMissingEmail
	}
	if len(in.Items) == 0 {
		return PlaceOrderResult{}, ErrEmptyOrder
	}
	if in.TotalPrice.IsNegative() {
		return PlaceOrderResult{}, ErrNegativeTotal
	}

	var idemKey string
	if in.PaymentRef != "" {
		idemKey = "placed:" + in.PaymentRef
		ok, err := s.cache.SetIdempotency(ctx, idemKey)
		if err != nil {
			return PlaceOrderResult{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return PlaceOrderResult{}, ErrDuplicateRequest
		}
	}

	// One cache unit per line occurrence; a multi-line order for the same
	// product reserves multiple units.
	reserved := make(map[string]int)
	for _, line := range in.Items {
		gate, err := s.cache.DecrementStock(ctx, line.ProductName)
		if err != nil {
			s.undoPlacement(ctx, idemKey, reserved)
			return PlaceOrderResult{}, fmt.Errorf("stock gate failed: %w", err)
		}
		switch gate {
		case port.StockTaken:
			reserved[line.ProductName]++
		case port.StockSoldOut:
			s.undoPlacement(ctx, idemKey, reserved)
			return PlaceOrderResult{}, &domain.OutOfStockError{ProductName: line.ProductName}
		case port.StockUnknown:
			// No cache entry; the database decides for this line.
		}
	}

	coins := domain.CoinsEarned(in.TotalPrice)
	order := domain.Order{
		ID:          uuid.NewString(),
		UserEmail:   in.UserEmail,
		Items:       in.Items,
		TotalPrice:  in.TotalPrice,
		PaymentRef:  in.PaymentRef,
		PaymentMode: in.PaymentMode,
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	skipped, err := s.db.CreateOrder(ctx, order, coins)
	if err != nil {
		s.undoPlacement(ctx, idemKey, reserved)
		var oos *domain.OutOfStockError
		if errors.As(err, &oos) {
			return PlaceOrderResult{}, err
		}
		return PlaceOrderResult{}, fmt.Errorf("persist order: %w", err)
	}

	// A line the cache reserved but the database skipped (product row gone,
	// stale cache key) would otherwise leak a cache unit forever.
	for _, name := range skipped {
		if units := reserved[name]; units > 0 {
			s.releaseStock(ctx, map[string]int{name: units})
		}
	}

	return PlaceOrderResult{OrderID: order.ID, CoinsEarned: coins}, nil
}

// undoPlacement reverses every cache-side effect of a failed placement so a
// retry of the same payment ref starts clean.
func (s *OrderService) undoPlacement(ctx context.Context, idemKey string, reserved map[string]int) {
	s.releaseStock(ctx, reserved)
	if idemKey != "" {
		if err := s.cache.ReleaseIdempotency(ctx, idemKey); err != nil {
			obs.Logger.Error("idempotency_release_failed", "key", idemKey, "error", err)
		}
	}
}

func (s *OrderService) releaseStock(ctx context.Context, reserved map[string]int) {
	for name, units := range reserved {
		if err := s.cache.IncrementStock(ctx, name, units); err != nil {
			obs.Logger.Error("stock_release_failed", "product", name, "units", units, "error", err)
		}
	}
}

// OrdersForUser returns a user's order history, newest first.
func (s *OrderService) OrdersForUser(ctx context.Context, userEmail string) ([]domain.Order, error) {
	if userEmail == "" {
		return nil, ErrMissingEmail
	}
	return s.db.OrdersForUser(ctx, userEmail)
}

// AllOrdersWithContacts returns every order newest first, each joined with
// the ordering user's address and phone for the admin view.
func (s *OrderService) AllOrdersWithContacts(ctx context.Context) ([]domain.OrderWithContact, error) {
	orders, err := s.db.AllOrders(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.OrderWithContact, 0, len(orders))
	for _, o := range orders {
		row := domain.OrderWithContact{
			Order:   o,
			Address: domain.ContactNotProvided,
			Phone:   domain.ContactNotProvided,
		}
		contact, err := s.dir.ContactByEmail(ctx, o.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("contact lookup for %s: %w", o.UserEmail, err)
		}
		if contact != nil {
			if contact.Address != "" {
				row.Address = contact.Address
			}
			if contact.Phone != "" {
				row.Phone = contact.Phone
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Coins returns the user's loyalty balance, 0 when no profile exists yet.
func (s *OrderService) Coins(ctx context.Context, userEmail string) (int64, error) {
	if userEmail == "" {
		return 0, ErrMissingEmail
	}
	return s.db.GetCoins(ctx, userEmail)
}
