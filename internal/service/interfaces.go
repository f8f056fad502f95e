package service

import (
	"context"
	"time"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/pkg/payment"
)

// SessionStore holds the single live refresh token per user. One login
// overwrites the prior entry, implicitly ending the older session.
type SessionStore interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, token string, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

// SessionService issues, rotates, and revokes the access/refresh token pair
type SessionService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, *domain.TokenPair, error)
	RotateAccessToken(ctx context.Context, refreshToken string) (string, error)
	VerifyAccess(accessToken string) (string, error)
	RevokeSession(ctx context.Context, refreshToken string) error
	LoadProfile(ctx context.Context, accessToken string) (*domain.User, error)
}

// CartService mutates and renders a user's embedded cart
type CartService interface {
	AddItem(ctx context.Context, user *domain.User, productID string) error
	RemoveItem(ctx context.Context, user *domain.User, productID string) error
	SetQuantity(ctx context.Context, user *domain.User, productID string, quantity int) error
	CartView(ctx context.Context, user *domain.User) ([]dto.CartProduct, error)
}

// CouponService manages the one-coupon-per-user discount ledger
type CouponService interface {
	ActiveCoupon(ctx context.Context, userID string) (*domain.Coupon, error)
	ValidateCoupon(ctx context.Context, userID, code string) (*domain.Coupon, error)
	ReplaceCoupon(ctx context.Context, userID string, discountPercentage int, validFor time.Duration) (*domain.Coupon, error)
}

// CheckoutProvider is the payment gateway surface used by checkout
type CheckoutProvider interface {
	CreateSession(ctx context.Context, lines []payment.Line, percentOff int64, metadata map[string]string) (*payment.Session, error)
	GetSession(ctx context.Context, id string) (*payment.Session, error)
}

// CheckoutService drives the payment flow from cart snapshot to order
type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, user *domain.User, req *dto.CreateCheckoutRequest) (*dto.CheckoutSessionResponse, error)
	ConfirmCheckout(ctx context.Context, sessionID string) (*dto.CheckoutSuccessResponse, error)
}

// ImageStore stores product images with an external provider
type ImageStore interface {
	Upload(ctx context.Context, image string) (string, error)
	Destroy(ctx context.Context, imageURL string) error
}

// ProductService serves and mutates the catalog
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Featured(ctx context.Context) ([]*domain.Product, error)
	Recommended(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, req *dto.CreateProductRequest) (*domain.Product, error)
	ToggleFeatured(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// AnalyticsService aggregates store-wide sales data
type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.AnalyticsOverview, error)
	DailySales(ctx context.Context, start, end time.Time) ([]dto.DailySalesPoint, error)
}
