package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter — разделяемый бэкенд на счётчиках Redis: fixed window,
// TTL выставляется на первом инкременте. Уборку делает сам Redis через TTL.
type RedisLimiter struct {
	rdb         redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(rdb redis.UniversalClient, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func attemptKey(identity string) string {
	return "otp:attempts:" + identity
}

func (l *RedisLimiter) CheckAndIncrement(ctx context.Context, identity string) (bool, error) {
	key := attemptKey(identity)

	count, err := l.rdb.Get(ctx, key).Int64()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("limiter redis get: %w", err)
	}
	if err == nil && count >= int64(l.maxAttempts) {
		// на пределе не инкрементим, просто отказываем
		return false, nil
	}

	count, err = l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("limiter redis incr: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("limiter redis expire: %w", err)
		}
	}
	return count <= int64(l.maxAttempts), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, identity string) error {
	if err := l.rdb.Del(ctx, attemptKey(identity)).Err(); err != nil {
		return fmt.Errorf("limiter redis del: %w", err)
	}
	return nil
}

func (l *RedisLimiter) Stop() {}
