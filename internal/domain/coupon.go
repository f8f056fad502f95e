package domain

import "time"

// Coupon is a single percentage discount tied to one user. At most one row
// exists per user; issuing a new coupon deletes the prior one.
type Coupon struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"user_id" db:"user_id"`
	Code               string    `json:"code" db:"code"`
	DiscountPercentage int       `json:"discount_percentage" db:"discount_percentage"`
	IsActive           bool      `json:"is_active" db:"is_active"`
	ExpirationDate     time.Time `json:"expiration_date" db:"expiration_date"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// IsExpiredAt reports whether the coupon's expiration date has passed.
func (c *Coupon) IsExpiredAt(t time.Time) bool {
	return c.ExpirationDate.Before(t)
}

// ApplyDiscount returns totalCents reduced by the coupon percentage,
// rounded to the nearest cent.
func (c *Coupon) ApplyDiscount(totalCents int64) int64 {
	discounted := float64(totalCents) * (1 - float64(c.DiscountPercentage)/100)
	return int64(discounted + 0.5)
}
