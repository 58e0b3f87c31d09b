package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"invoicely-backend/internal/auth"
)

const blacklistKeyPrefix = "token_blacklist:"

// RedisTokenBlacklist stores revoked access tokens as redis keys whose TTL
// matches the revocation window, so expiry is enforced by redis itself.
type RedisTokenBlacklist struct {
	client *redis.Client
}

var _ auth.TokenBlacklist = (*RedisTokenBlacklist)(nil)

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Add upserts the token with a TTL running until expiresAt. An already
// lapsed expiry removes any stale key instead of storing a dead one.
func (r *RedisTokenBlacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.client.Del(ctx, blacklistKeyPrefix+token).Err()
	}
	return r.client.Set(ctx, blacklistKeyPrefix+token, expiresAt.Unix(), ttl).Err()
}

// Exists reports whether the token is currently revoked. Lazy eviction is
// redis's own key expiry.
func (r *RedisTokenBlacklist) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired is a no-op: key TTLs already bound storage growth.
func (r *RedisTokenBlacklist) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
