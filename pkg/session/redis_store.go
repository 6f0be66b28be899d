package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"CourseHub/internal/models"
)

const (
	redisAccessKeySuffix  = ":access_token"
	redisRefreshKeySuffix = ":refresh_token"
)

// RedisStore persists the pair under two distinct redis keys, for web
// front-end processes that keep sessions out of local disk. Keys expire with
// the refresh credential TTL so dead sessions age out on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Load() (*models.Credentials, error) {
	ctx := context.Background()
	access, err := s.client.Get(ctx, s.prefix+redisAccessKeySuffix).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	refresh, err := s.client.Get(ctx, s.prefix+redisRefreshKeySuffix).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	pair := models.Credentials{AccessToken: access, RefreshToken: refresh}
	if pair.Empty() {
		return nil, nil
	}
	return &pair, nil
}

func (s *RedisStore) Save(pair models.Credentials) error {
	ctx := context.Background()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.prefix+redisAccessKeySuffix, pair.AccessToken, s.ttl)
		pipe.Set(ctx, s.prefix+redisRefreshKeySuffix, pair.RefreshToken, s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Clear() error {
	ctx := context.Background()
	return s.client.Del(ctx, s.prefix+redisAccessKeySuffix, s.prefix+redisRefreshKeySuffix).Err()
}
