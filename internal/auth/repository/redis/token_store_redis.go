package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/altel/telebill/internal/auth/repository"
)

const accessTokenKeyPrefix = "access_token:"

type redisTokenStore struct {
	client *goredis.Client
}

func NewRedisTokenStore(client *goredis.Client) repository.TokenStore {
	return &redisTokenStore{client: client}
}

func key(token string) string {
	return fmt.Sprintf("%s%s", accessTokenKeyPrefix, token)
}

func (s *redisTokenStore) Save(ctx context.Context, token string, adminID int64, ttl time.Duration) error {
	return s.client.Set(ctx, key(token), adminID, ttl).Err()
}

func (s *redisTokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	value, err := s.client.Get(ctx, key(token)).Result()
	if err == goredis.Nil {
		return 0, repository.ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}

	adminID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed token store entry: %w", err)
	}
	return adminID, nil
}

func (s *redisTokenStore) Touch(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Expire(ctx, key(token), ttl).Err()
}
