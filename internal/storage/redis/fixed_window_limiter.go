package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atalhobr/atalho/internal/infrastructure/logger"
)

// counterStore is the slice of redis commands the limiter needs.
type counterStore interface {
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
}

// FixedWindowLimiter counts hits per caller per clock minute. Redis being
// down must never take the API down with it, so errors mean "allow".
type FixedWindowLimiter struct {
	store counterStore
	limit int64
	now   func() time.Time
}

func NewFixedWindowLimiter(store counterStore, perMinute int) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store: store,
		limit: int64(perMinute),
		now:   time.Now,
	}
}

// Allow reports whether the caller identified by key may proceed.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	if l.limit <= 0 {
		return true
	}

	window := l.now().UTC().Unix() / 60
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, window)

	count, err := l.store.Incr(ctx, bucket).Result()
	if err != nil {
		logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	if count == 1 {
		// Window plus slack so clock skew cannot strand live buckets.
		if err := l.store.Expire(ctx, bucket, 90*time.Second).Err(); err != nil {
			logger.Warn("rate limiter expire failed", zap.String("key", bucket), zap.Error(err))
		}
	}
	return count <= l.limit
}
