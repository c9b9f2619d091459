// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"credit-scoring/internal/common/logger"
)

// Limiter is a fixed-window request counter backed by Redis. Keys are
// whatever the caller uses to identify a client, typically the remote IP.
type Limiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   logger.Logger
}

func NewLimiter(client *redis.Client, requests int, window time.Duration, log logger.Logger) *Limiter {
	return &Limiter{
		client:   client,
		requests: requests,
		window:   window,
		logger:   log.WithFields(map[string]interface{}{"component": "ratelimit"}),
	}
}

// Allow reports whether the client identified by key may proceed. Redis
// trouble fails open: limiting is protection, not a hard dependency.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return true
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return count <= int64(l.requests)
}
