package dto

import (
	"time"

	"github.com/mshelar/shop-service/internal/domain"
)

// MessageResponse represents a success response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// UserResponse represents a user in responses
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	CartItems []domain.CartItem `json:"cart_items"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a user record
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CartItems: user.CartItems,
		CreatedAt: user.CreatedAt,
	}
}

// CartProduct is a catalog product joined with its cart quantity
type CartProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

// ValidCouponResponse is returned for a successfully validated coupon
type ValidCouponResponse struct {
	Message            string `json:"message"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}

// CheckoutSessionResponse returns the provider session id and the charged
// total in major units.
type CheckoutSessionResponse struct {
	SessionID   string  `json:"session_id"`
	TotalAmount float64 `json:"total_amount"`
}

// CheckoutSuccessResponse reports the confirmation outcome
type CheckoutSuccessResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id,omitempty"`
}

// AnalyticsOverview aggregates store-wide counters
type AnalyticsOverview struct {
	TotalUsers       int64   `json:"total_users"`
	TotalProducts    int64   `json:"total_products"`
	TotalSales       int64   `json:"total_sales"`
	TotalSalesAmount float64 `json:"total_sales_amount"`
}

// DailySalesPoint is one day of the trailing sales series
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// AnalyticsResponse is the admin analytics payload
type AnalyticsResponse struct {
	Analytics      AnalyticsOverview `json:"analytics"`
	DailySalesData []DailySalesPoint `json:"daily_sales_data"`
}
