package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache keys shared by services that read and invalidate them.
const (
	CacheKeyTemperatureAverage = "temperature:average"
	CacheKeyPostList           = "posts:list"
)

type CacheRepository interface {
	Delete(ctx context.Context, keys ...string) error
	// GetJSON reports false when the key is absent.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Ping(ctx context.Context) error
}

type cacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) CacheRepository {
	return &cacheRepository{client: client}
}

func (r *cacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *cacheRepository) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.Set(ctx, key, jsonData, expiration).Err()
}

func (r *cacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// noopCache is used when Redis is disabled; every read misses.
type noopCache struct{}

func NewNoopCacheRepository() CacheRepository {
	return noopCache{}
}

func (noopCache) Delete(context.Context, ...string) error { return nil }

func (noopCache) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopCache) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopCache) Ping(context.Context) error { return nil }
