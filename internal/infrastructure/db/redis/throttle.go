package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts consecutive failed logins per key in Redis.
// Key format: login_fail:<email>, expiring after the window so a cooled
// down account unlocks by itself.
type LoginThrottle struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given client.
// Non-positive limits fall back to defaults.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, max: maxAttempts, window: window}
}

// Allow reports whether another attempt for key is permitted.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(key)).Int64()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return true, fmt.Errorf("throttle check: %w", err)
	}
	return n < int64(t.max), nil
}

// RecordFailure bumps the failure counter for key. The window starts at
// the first failure and is not extended by later ones.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	k := t.key(key)
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *LoginThrottle) key(k string) string {
	return "login_fail:" + k
}
