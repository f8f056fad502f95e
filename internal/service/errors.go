package service

import "errors"

// Service-level errors. Handlers map these to HTTP statuses.
var (
	// ErrEmailTaken is returned on signup with an already-registered email
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned for a wrong email/password pair
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession is returned when a presented refresh token does not
	// match the cached one for its user, or the cache cannot answer. Token
	// rotation fails closed.
	ErrInvalidSession = errors.New("invalid session")

	// ErrUserNotFound is returned when a token's user no longer resolves
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput is returned for malformed business input
	ErrInvalidInput = errors.New("invalid input")

	// ErrProductNotFound is returned when a catalog entity is missing
	ErrProductNotFound = errors.New("product not found")

	// ErrNotInCart is returned when updating a product absent from the cart
	ErrNotInCart = errors.New("product not found in cart")

	// ErrCouponNotFound is returned when no matching active coupon exists
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponExpired is returned when a coupon's expiration date has
	// passed; the coupon is deactivated as a side effect.
	ErrCouponExpired = errors.New("coupon expired")

	// ErrOrderExists is returned when a checkout session was already
	// confirmed into an order.
	ErrOrderExists = errors.New("order already exists for this session")
)
