package dto

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AddToCartRequest adds one unit of a product to the cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// RemoveFromCartRequest removes a single product line; an empty product id
// clears the whole cart.
type RemoveFromCartRequest struct {
	ProductID string `json:"product_id"`
}

// UpdateQuantityRequest overwrites the quantity of a cart line
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// ValidateCouponRequest represents a coupon validation request
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	IsFeatured  bool    `json:"is_featured"`
}

// CheckoutProduct is the client's view of a product being purchased
type CheckoutProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CreateCheckoutRequest represents a checkout session creation request
type CreateCheckoutRequest struct {
	Products   []CheckoutProduct `json:"products"`
	CouponCode string            `json:"coupon_code"`
}

// CheckoutSuccessRequest confirms a checkout session after redirect
type CheckoutSuccessRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}
