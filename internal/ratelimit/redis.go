package ratelimit

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// Counts hits in the current window and starts the window on the first hit.
var fixedWindowScript = redisv9.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter allows at most limit hits per key in each fixed window. The
// count lives in redis, so it holds across server instances.
type RedisLimiter struct {
	client *redisv9.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redisv9.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := fixedWindowScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis rate limit failed: %w", err)
	}
	return count <= int64(l.limit), nil
}

func (l *RedisLimiter) key(key string) string {
	return l.prefix + key
}
