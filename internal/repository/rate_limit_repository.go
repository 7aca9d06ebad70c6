package repository

import (
	"context"
	"fmt"
	"time"

	redisapp "architylez/internal/storage/redis"
)

// RedisRateLimitRepo считает события в фиксированном окне.
// Первый инкремент ключа выставляет ему TTL окна.
type RedisRateLimitRepo struct {
	Client *redisapp.Client
}

func NewRedisRateLimitRepo(client *redisapp.Client) *RedisRateLimitRepo {
	return &RedisRateLimitRepo{Client: client}
}

// Hit регистрирует событие и возвращает число событий в текущем окне.
func (r *RedisRateLimitRepo) Hit(ctx context.Context, scope, subject string, window time.Duration) (int64, error) {
	const op = "repository.rate_limit_repository.Hit"

	key := rateLimitKey(scope, subject)

	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if count == 1 {
		if err := r.Client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return count, nil
}

func (r *RedisRateLimitRepo) Reset(ctx context.Context, scope, subject string) error {
	return r.Client.Del(ctx, rateLimitKey(scope, subject)).Err()
}

func rateLimitKey(scope, subject string) string {
	return "ratelimit:" + scope + ":" + subject
}
