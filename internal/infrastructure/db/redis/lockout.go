package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockoutTTL  = 15 * time.Minute
	maxFailures = 10
)

// Lockout counts consecutive failed logins per account in Redis.
// Key format: lockout:<email>; the counter expires after lockoutTTL, so a
// locked account unlocks itself once the window passes.
type Lockout struct {
	client *redis.Client
}

// NewLockout creates a Lockout wrapping the given Redis client.
func NewLockout(client *redis.Client) *Lockout {
	return &Lockout{client: client}
}

// IsLocked reports whether the account has reached the failure threshold.
func (l *Lockout) IsLocked(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its TTL.
func (l *Lockout) RecordFailure(ctx context.Context, email string) error {
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, l.key(email))
	pipe.Expire(ctx, l.key(email), lockoutTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *Lockout) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *Lockout) key(email string) string {
	return "lockout:" + email
}
