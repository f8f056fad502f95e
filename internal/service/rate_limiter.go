package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mshelar/shop-service/pkg/database"
	"github.com/redis/go-redis/v9"
)

// ErrRateLimited is returned when a caller exceeds its request budget
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter implements a sliding-window request counter on Redis, used
// to slow brute-force attempts against the credential endpoints.
type RateLimiter struct {
	redis *database.Redis
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow records a request under key and reports whether it fits within
// limit requests per window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) error {
	now := time.Now()
	windowStart := now.Add(-window)
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	if err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.Unix())).Err(); err != nil {
		return fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("failed to count rate limit window: %w", err)
	}

	if count >= int64(limit) {
		return ErrRateLimited
	}

	member := fmt.Sprintf("%d", now.UnixNano())
	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.Unix()),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}

	// Expire the key once the window has fully rolled over.
	r.redis.Client.Expire(ctx, redisKey, window+time.Minute)

	return nil
}
