package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Unlimited allows every call.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) bool { return true }

// fixedWindow increments the counter and arms the expiry on the first hit of a window.
var fixedWindow = redis.NewScript(`local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
end
return count`)

// RedisLimiter is a fixed window counter shared between instances through Redis.
type RedisLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
	log       *logrus.Logger
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, keyPrefix string, log *logrus.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: keyPrefix,
		log:       log,
	}
}

// Allow reports whether key is still under the limit for the current window.
// Redis errors are logged and the call is allowed.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) bool {
	count, err := rl.hit(ctx, key)
	if err != nil {
		rl.log.WithError(err).WithField("key", key).Warn("rate limiter unavailable, allowing request")
		return true
	}

	if count > rl.limit {
		rl.log.WithFields(logrus.Fields{
			"key":   key,
			"count": count,
			"limit": rl.limit,
		}).Info("rate limit exceeded")
		return false
	}
	return true
}

func (rl *RedisLimiter) hit(ctx context.Context, key string) (int, error) {
	seconds := int(rl.window.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	result, err := fixedWindow.Run(ctx, rl.client, []string{rl.keyPrefix + key}, seconds).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	return result, nil
}
