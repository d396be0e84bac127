package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter implements a fixed-window counter on Redis.
type Limiter struct {
	client *redis.Client
}

// NewLimiter wraps an existing client.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow increments the counter for key in the current window and reports
// whether the count is still within limit.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l == nil || l.client == nil || limit <= 0 {
		return true, nil
	}
	// Sub-second windows would divide by zero below.
	if window < time.Second {
		window = time.Second
	}

	now := time.Now().Unix()
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, now/int64(window.Seconds()))

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return int(incr.Val()) <= limit, nil
}
