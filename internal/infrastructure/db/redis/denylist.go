package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked refresh-token ids in Redis.
// Key format: revoked:<jti>. Entries expire on the refresh-token TTL,
// after which the token is unusable anyway.
type TokenDenylist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client, ttl time.Duration) *TokenDenylist {
	return &TokenDenylist{client: client, ttl: ttl}
}

// IsRevoked reports whether the token id has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

// Revoke records the token id as revoked (expires after ttl).
func (d *TokenDenylist) Revoke(ctx context.Context, jti string) error {
	return d.client.Set(ctx, d.key(jti), "1", d.ttl).Err()
}

func (d *TokenDenylist) key(jti string) string {
	return "revoked:" + jti
}
