package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/repository"
)

const couponCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// couponService implements CouponService
type couponService struct {
	couponRepo repository.CouponRepository
	now        func() time.Time
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

// ActiveCoupon returns the user's coupon if one is active. A deactivated
// coupon is reported as absent, not as expired.
func (s *couponService) ActiveCoupon(ctx context.Context, userID string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return coupon, nil
}

// ValidateCoupon checks that the code belongs to the user and is active.
// A coupon found past its expiration date is deactivated in place and
// reported expired; there is no background sweep.
func (s *couponService) ValidateCoupon(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetActiveByCodeAndUser(ctx, code, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	if coupon.IsExpiredAt(s.now()) {
		if err := s.couponRepo.Deactivate(ctx, userID, coupon.Code); err != nil {
			return nil, fmt.Errorf("failed to deactivate expired coupon: %w", err)
		}
		return nil, ErrCouponExpired
	}

	return coupon, nil
}

// ReplaceCoupon deletes the user's prior coupon, if any, and issues a new
// active one. A user holds at most one coupon at a time.
func (s *couponService) ReplaceCoupon(ctx context.Context, userID string, discountPercentage int, validFor time.Duration) (*domain.Coupon, error) {
	if discountPercentage < 0 || discountPercentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage out of range", ErrInvalidInput)
	}

	if err := s.couponRepo.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to delete prior coupon: %w", err)
	}

	coupon := &domain.Coupon{
		UserID:             userID,
		Code:               "GIFT" + randomCode(7),
		DiscountPercentage: discountPercentage,
		IsActive:           true,
		ExpirationDate:     s.now().Add(validFor),
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return coupon, nil
}

// randomCode returns n random characters from the coupon alphabet.
func randomCode(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = couponCodeAlphabet[int(b)%len(couponCodeAlphabet)]
	}
	return string(buf)
}
