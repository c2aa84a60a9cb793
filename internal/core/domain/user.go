package domain

import "time"

// User is an account record. PasswordHash is a bcrypt hash, never the raw
// password.
type User struct {
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// LoyaltyProfile tracks a user's coin balance. Created lazily on the user's
// first order.
type LoyaltyProfile struct {
	UserEmail   string `json:"user_email"`
	CoinBalance int64  `json:"coin_balance"`
}

// Contact is the delivery address book entry the admin view joins against.
type Contact struct {
	UserEmail string `json:"user_email"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}
