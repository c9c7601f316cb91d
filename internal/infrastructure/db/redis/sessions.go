package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = time.Hour

// SessionRegistry enforces server-side session expiry backed by Redis.
// Key format: session:<token_hash>. The user document carries no expiry
// field; a session is live only while its key exists, so tokens die on
// their own after the TTL even if logout never runs.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRegistry creates a SessionRegistry wrapping the given Redis
// client. A non-positive ttl falls back to defaultSessionTTL.
func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRegistry{client: client, ttl: ttl}
}

// Track records a newly issued session; the entry expires after the TTL.
func (s *SessionRegistry) Track(ctx context.Context, tokenHash string) error {
	return s.client.Set(ctx, s.key(tokenHash), "1", s.ttl).Err()
}

// IsLive reports whether the session is still within its lifetime.
func (s *SessionRegistry) IsLive(ctx context.Context, tokenHash string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenHash)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Revoke removes the session eagerly (logout, or overwrite by a new login).
func (s *SessionRegistry) Revoke(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, s.key(tokenHash)).Err()
}

func (s *SessionRegistry) key(tokenHash string) string {
	return fmt.Sprintf("session:%s", tokenHash)
}
