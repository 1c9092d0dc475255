// Copyright (c) 2026 Zinery. All rights reserved.

package reader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/constants"
)

// GrantRepository stores short-lived unlock grants for password-protected
// zines.
type GrantRepository interface {

	// Set stores a grant token for a zine with the given TTL.
	Set(context context.Context, token, zineID string, timeToLive time.Duration) error

	// Get returns the zine ID a grant token unlocks, or NotFound when
	// the token is absent or expired.
	Get(context context.Context, token string) (string, error)
}

// RedisGrantRepository implements [GrantRepository] using Redis with
// native key expiry.
type RedisGrantRepository struct {
	client *redis.Client
}

// NewRedisGrantRepository creates a new Redis-backed [GrantRepository].
func NewRedisGrantRepository(client *redis.Client) *RedisGrantRepository {
	return &RedisGrantRepository{client: client}
}

func (repository *RedisGrantRepository) Set(context context.Context, token, zineID string, timeToLive time.Duration) error {
	key := constants.RedisPrefixReaderGrant + token

	if err := repository.client.Set(context, key, zineID, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_reader_grant_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisGrantRepository) Get(context context.Context, token string) (string, error) {
	key := constants.RedisPrefixReaderGrant + token

	zineID, err := repository.client.Get(context, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.NotFound("Access grant")
	}
	if err != nil {
		return "", fmt.Errorf("redis_reader_grant_get_failed: %w", err)
	}
	return zineID, nil
}
