package service

import (
	"context"
	"fmt"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/repository"
)

// cartService implements CartService. Every mutation rewrites the user's
// whole embedded cart array; concurrent mutations on the same user race at
// document level and the last write wins. There is no per-line atomic
// increment and no version check.
type cartService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(userRepo repository.UserRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// AddItem increments the quantity of an existing line or appends a new one
func (s *cartService) AddItem(ctx context.Context, user *domain.User, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidInput)
	}

	if i := user.FindCartItem(productID); i >= 0 {
		user.CartItems[i].Quantity++
	} else {
		user.CartItems = append(user.CartItems, domain.CartItem{
			ProductID: productID,
			Quantity:  1,
		})
	}

	return s.userRepo.UpdateCart(ctx, user.ID, user.CartItems)
}

// RemoveItem filters one product line out of the cart; an empty product id
// clears the whole cart.
func (s *cartService) RemoveItem(ctx context.Context, user *domain.User, productID string) error {
	if productID == "" {
		user.CartItems = []domain.CartItem{}
	} else {
		kept := user.CartItems[:0]
		for _, item := range user.CartItems {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		user.CartItems = kept
	}

	return s.userRepo.UpdateCart(ctx, user.ID, user.CartItems)
}

// SetQuantity overwrites the quantity of an existing line. Quantity zero
// removes the line.
func (s *cartService) SetQuantity(ctx context.Context, user *domain.User, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: negative quantity", ErrInvalidInput)
	}

	i := user.FindCartItem(productID)
	if i < 0 {
		return ErrNotInCart
	}

	if quantity == 0 {
		user.CartItems = append(user.CartItems[:i], user.CartItems[i+1:]...)
	} else {
		user.CartItems[i].Quantity = quantity
	}

	return s.userRepo.UpdateCart(ctx, user.ID, user.CartItems)
}

// CartView joins the cart lines against the live catalog. Lines whose
// product no longer exists are dropped from the view; the stored cart is
// left untouched.
func (s *cartService) CartView(ctx context.Context, user *domain.User) ([]dto.CartProduct, error) {
	if len(user.CartItems) == 0 {
		return []dto.CartProduct{}, nil
	}

	ids := make([]string, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := make([]dto.CartProduct, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		view = append(view, dto.CartProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Category:    p.Category,
			Quantity:    item.Quantity,
		})
	}

	return view, nil
}
