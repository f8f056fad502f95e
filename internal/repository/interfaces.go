package repository

import (
	"context"
	"time"

	"github.com/mshelar/shop-service/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateCart rewrites the user's whole embedded cart. Concurrent writers
	// race at document level: last write wins.
	UpdateCart(ctx context.Context, userID string, items []domain.CartItem) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepository defines methods for catalog operations
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	ListFeatured(ctx context.Context) ([]*domain.Product, error)
	Random(ctx context.Context, n int) ([]*domain.Product, error)
	SetFeatured(ctx context.Context, id string, featured bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// CouponRepository defines methods for coupon operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetActiveByUser(ctx context.Context, userID string) (*domain.Coupon, error)
	GetActiveByCodeAndUser(ctx context.Context, code, userID string) (*domain.Coupon, error)
	Deactivate(ctx context.Context, userID, code string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// OrderRepository defines methods for order operations
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)
	SalesSummary(ctx context.Context) (totalOrders int64, totalAmountCents int64, err error)
	DailySales(ctx context.Context, start, end time.Time) (map[string]DailySalesRow, error)
}

// DailySalesRow aggregates one day of confirmed orders.
type DailySalesRow struct {
	Orders       int64
	RevenueCents int64
}
