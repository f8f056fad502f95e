package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/pkg/database"
)

// orderRepository implements OrderRepository interface
type orderRepository struct {
	db *database.Postgres
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.Postgres) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts an immutable order record. The stripe_session_id column is
// unique, so a replayed confirmation for the same session is rejected.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, items, total_amount_cents, stripe_session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	_, err = r.db.DB.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		itemsJSON,
		order.TotalAmountCents,
		order.StripeSessionID,
		order.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("order for session %s: %w", order.StripeSessionID, ErrDuplicateOrder)
			}
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetBySessionID retrieves the order created for a checkout session
func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, items, total_amount_cents, stripe_session_id, created_at
		FROM orders
		WHERE stripe_session_id = $1
	`

	order := &domain.Order{}
	var itemsJSON []byte

	err := r.db.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&order.ID,
		&order.UserID,
		&itemsJSON,
		&order.TotalAmountCents,
		&order.StripeSessionID,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order for session %s not found: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by session id: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

// SalesSummary returns the total number of orders and the summed amount
func (r *orderRepository) SalesSummary(ctx context.Context) (int64, int64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total_amount_cents), 0) FROM orders`

	var totalOrders, totalAmountCents int64
	err := r.db.DB.QueryRowContext(ctx, query).Scan(&totalOrders, &totalAmountCents)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query sales summary: %w", err)
	}

	return totalOrders, totalAmountCents, nil
}

// DailySales aggregates orders per day between start and end. Days without
// orders are absent from the map; the service layer zero-fills them.
func (r *orderRepository) DailySales(ctx context.Context, start, end time.Time) (map[string]DailySalesRow, error) {
	query := `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*), COALESCE(SUM(total_amount_cents), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	sales := make(map[string]DailySalesRow)
	for rows.Next() {
		var day string
		var row DailySalesRow
		if err := rows.Scan(&day, &row.Orders, &row.RevenueCents); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		sales[day] = row
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily sales: %w", err)
	}

	return sales, nil
}
