package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Name is the unique key the order flow
// addresses stock by; StockQuantity never goes below zero.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

// Banner is a promotional slot shown on the storefront, ordered by Position.
type Banner struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
}
