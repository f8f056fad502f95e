package repository

import (
	"github.com/mshelar/shop-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Product ProductRepository
	Coupon  CouponRepository
	Order   OrderRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Product: NewProductRepository(db),
		Coupon:  NewCouponRepository(db),
		Order:   NewOrderRepository(db),
	}
}
