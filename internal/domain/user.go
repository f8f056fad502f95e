package domain

import "time"

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// CartItem is a single line of a user's cart. The cart is embedded in the
// user record and persisted as a whole on every mutation.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// User represents a user in the system
type User struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	CartItems    []CartItem `json:"cart_items" db:"cart_items"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FindCartItem returns the index of the line holding productID, or -1.
func (u *User) FindCartItem(productID string) int {
	for i, item := range u.CartItems {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
