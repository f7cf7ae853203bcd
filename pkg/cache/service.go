package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not present in the cache
var ErrCacheMiss = errors.New("cache miss")

type Service interface {
	// Generic cache operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) bool

	// Cache-aside pattern helper
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetcher func() (interface{}, error)) error

	// Health check
	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
}

func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (s *service) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("cache keys error: %w", err)
	}

	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache delete pattern error: %w", err)
		}
	}

	return nil
}

func (s *service) Exists(ctx context.Context, key string) bool {
	result, err := s.client.Exists(ctx, key).Result()
	return err == nil && result > 0
}

func (s *service) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetcher func() (interface{}, error)) error {
	// Try the cache first
	err := s.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	// Miss: fetch from the source and populate
	value, err := fetcher()
	if err != nil {
		return err
	}

	if err := s.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return json.Unmarshal(data, dest)
}

func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
