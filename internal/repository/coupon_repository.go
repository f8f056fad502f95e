package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/pkg/database"
)

// couponRepository implements CouponRepository interface
type couponRepository struct {
	db *database.Postgres
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *database.Postgres) CouponRepository {
	return &couponRepository{db: db}
}

// Create creates a new coupon. The user_id column carries a unique
// constraint, so a second coupon for the same user is rejected.
func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		INSERT INTO coupons (id, user_id, code, discount_percentage, is_active, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		coupon.ID,
		coupon.UserID,
		coupon.Code,
		coupon.DiscountPercentage,
		coupon.IsActive,
		coupon.ExpirationDate,
		coupon.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("coupon for user %s: %w", coupon.UserID, ErrDuplicateCoupon)
			}
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

// GetActiveByUser retrieves the user's coupon if it is active
func (r *couponRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Coupon, error) {
	query := `
		SELECT id, user_id, code, discount_percentage, is_active, expiration_date, created_at
		FROM coupons
		WHERE user_id = $1 AND is_active = TRUE
	`

	coupon, err := r.scanCoupon(r.db.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active coupon for user %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon by user: %w", err)
	}

	return coupon, nil
}

// GetActiveByCodeAndUser retrieves an active coupon matching both the code
// and the owning user
func (r *couponRepository) GetActiveByCodeAndUser(ctx context.Context, code, userID string) (*domain.Coupon, error) {
	query := `
		SELECT id, user_id, code, discount_percentage, is_active, expiration_date, created_at
		FROM coupons
		WHERE code = $1 AND user_id = $2 AND is_active = TRUE
	`

	coupon, err := r.scanCoupon(r.db.DB.QueryRowContext(ctx, query, code, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("coupon %s for user %s not found: %w", code, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	return coupon, nil
}

// Deactivate marks the user's coupon with the given code as inactive.
// Deactivating a missing or already-inactive coupon is not an error.
func (r *couponRepository) Deactivate(ctx context.Context, userID, code string) error {
	query := `UPDATE coupons SET is_active = FALSE WHERE user_id = $1 AND code = $2`

	_, err := r.db.DB.ExecContext(ctx, query, userID, code)
	if err != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	return nil
}

// DeleteByUser removes the user's coupon, if any
func (r *couponRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM coupons WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) scanCoupon(row *sql.Row) (*domain.Coupon, error) {
	coupon := &domain.Coupon{}
	err := row.Scan(
		&coupon.ID,
		&coupon.UserID,
		&coupon.Code,
		&coupon.DiscountPercentage,
		&coupon.IsActive,
		&coupon.ExpirationDate,
		&coupon.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}
