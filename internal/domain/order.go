package domain

import "time"

// OrderItem is a line of an order, snapshotted at payment time. Price is in
// major units as quoted at checkout; the order total is kept in minor units.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is an immutable record of a confirmed purchase. StripeSessionID is
// unique: one checkout session produces at most one order.
type Order struct {
	ID               string      `json:"id" db:"id"`
	UserID           string      `json:"user_id" db:"user_id"`
	Items            []OrderItem `json:"items" db:"items"`
	TotalAmountCents int64       `json:"total_amount_cents" db:"total_amount_cents"`
	StripeSessionID  string      `json:"stripe_session_id" db:"stripe_session_id"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}
