package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mshelar/shop-service/pkg/database"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no refresh token is cached for a user
var ErrSessionNotFound = errors.New("session not found")

// redisSessionStore implements SessionStore on Redis. Keys are
// refreshToken:<userID>; each user has at most one entry.
type redisSessionStore struct {
	redis *database.Redis
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(redis *database.Redis) SessionStore {
	return &redisSessionStore{redis: redis}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("refreshToken:%s", userID)
}

// Get returns the cached refresh token for a user
func (s *redisSessionStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.redis.Client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

// Set stores the refresh token for a user, overwriting any prior one
func (s *redisSessionStore) Set(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.redis.Client.Set(ctx, sessionKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes the user's session entry. Deleting a missing entry is
// not an error.
func (s *redisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
