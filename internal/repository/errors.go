package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateCoupon is returned when a coupon insert collides on code or user
	ErrDuplicateCoupon = errors.New("coupon already exists")

	// ErrDuplicateOrder is returned when an order with the same checkout
	// session id already exists. This is the checkout idempotency boundary.
	ErrDuplicateOrder = errors.New("order for this checkout session already exists")
)
