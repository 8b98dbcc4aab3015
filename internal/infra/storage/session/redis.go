package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository хранение токена сессии в Redis
type RedisRepository struct {
	client *redis.Client
	key    string
}

// NewRedisRepository создает репозиторий поверх клиента Redis
func NewRedisRepository(client *redis.Client, key string) *RedisRepository {
	return &RedisRepository{
		client: client,
		key:    key,
	}
}

// Save сохраняет токен без TTL, срок действия проверяется при восстановлении
func (r *RedisRepository) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrRedis, err)
	}
	return nil
}

// Load возвращает сохраненный токен
func (r *RedisRepository) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: Load: %v", ErrRedis, err)
	}
	return token, nil
}

// Delete удаляет сохраненный токен
func (r *RedisRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrRedis, err)
	}
	return nil
}
