package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Lockout counts failed logins per key and locks the key once MaxFailures
// is reached. Counters expire Window after the last failure; locks expire
// after LockFor.
type Lockout struct {
	Client      redis.UniversalClient
	Prefix      string
	MaxFailures int64
	Window      time.Duration
	LockFor     time.Duration
}

// NewLockout returns a lockout keyed under "shopauth:login".
func NewLockout(client redis.UniversalClient, maxFailures int64, lockFor time.Duration) *Lockout {
	return &Lockout{
		Client:      client,
		Prefix:      "shopauth:login",
		MaxFailures: maxFailures,
		Window:      lockFor,
		LockFor:     lockFor,
	}
}

func (l *Lockout) failKey(key string) string { return l.Prefix + ":fail:" + key }
func (l *Lockout) lockKey(key string) string { return l.Prefix + ":lock:" + key }

// Locked reports whether key is currently locked out.
func (l *Lockout) Locked(ctx context.Context, key string) (bool, error) {
	_, err := l.Client.Get(ctx, l.lockKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("kv: read lock: %w", err)
	}
	return true, nil
}

// Fail records a failed attempt and returns the failure count. Reaching
// MaxFailures sets the lock and clears the counter.
func (l *Lockout) Fail(ctx context.Context, key string) (int64, error) {
	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, l.failKey(key))
	pipe.Expire(ctx, l.failKey(key), l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("kv: count failure: %w", err)
	}

	n := incr.Val()
	if l.MaxFailures > 0 && n >= l.MaxFailures {
		lock := l.Client.TxPipeline()
		lock.Set(ctx, l.lockKey(key), n, l.LockFor)
		lock.Del(ctx, l.failKey(key))
		if _, err := lock.Exec(ctx); err != nil {
			return n, fmt.Errorf("kv: set lock: %w", err)
		}
	}
	return n, nil
}

// Reset clears the counter and any lock for key, typically after a
// successful login.
func (l *Lockout) Reset(ctx context.Context, key string) error {
	if err := l.Client.Del(ctx, l.failKey(key), l.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("kv: reset: %w", err)
	}
	return nil
}
