package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMode string

const (
	PaymentModeOnline         PaymentMode = "online"
	PaymentModeCashOnDelivery PaymentMode = "cod"
)

// OrderLine is one item occurrence in an order. Quantity is carried on the
// wire for forward compatibility but placement always moves exactly one unit
// per line occurrence.
type OrderLine struct {
	ProductName string `json:"name"`
	Quantity    int    `json:"quantity,omitempty"`
}

type Order struct {
	ID          string          `json:"id"`
	UserEmail   string          `json:"user_email"`
	Items       []OrderLine     `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaymentRef  string          `json:"payment_ref,omitempty"`
	PaymentMode PaymentMode     `json:"payment_mode"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderWithContact is an order joined with the ordering user's contact
// fields for the admin listing. Address and Phone fall back to
// ContactNotProvided when the directory has no record for the user.
type OrderWithContact struct {
	Order
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

const ContactNotProvided = "Not Provided"

// CoinsEarned is the loyalty accrual rule: 10% of the order total, floored
// to a whole coin. A total of 199.99 earns exactly 19.
func CoinsEarned(totalPrice decimal.Decimal) int64 {
	return totalPrice.Div(decimal.NewFromInt(10)).Floor().IntPart()
}

// OutOfStockError blocks an entire placement and names the product the
// client should surface.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is Out of Stock", e.ProductName)
}
