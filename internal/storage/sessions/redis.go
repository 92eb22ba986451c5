// Package sessions stores refresh tokens in Redis with a TTL.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-api/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh:"

// RedisStore implements storage.SessionStore on a Redis client.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Compile-time check to ensure RedisStore implements SessionStore
var _ storage.SessionStore = (*RedisStore)(nil)

// Save stores the refresh token with the given TTL.
func (s *RedisStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, keyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Get resolves a refresh token to its user id, or storage.ErrNotFound when
// the token is unknown or expired.
func (s *RedisStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, storage.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt refresh token value: %w", err)
	}
	return userID, nil
}

// Delete revokes a refresh token. Deleting an unknown token is not an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
