package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "denylist:"

// TokenDenylistRepository remembers revoked token ids until they would have
// expired anyway.
type TokenDenylistRepository struct {
	rdb *redis.Client
}

func NewTokenDenylistRepository(rdb *redis.Client) *TokenDenylistRepository {
	return &TokenDenylistRepository{rdb: rdb}
}

func (r *TokenDenylistRepository) Deny(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, denylistPrefix+jti, "1", ttl).Err()
}

func (r *TokenDenylistRepository) IsDenied(ctx context.Context, jti string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, denylistPrefix+jti).Result()
	return exists == 1, err
}
