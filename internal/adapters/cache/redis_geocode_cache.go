package cache

import (
	"context"
	"distance-service/internal/platform/obs"
	"distance-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:v1:"

// RedisGeocodeCache stores geocoder results as JSON strings with a TTL.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	return client, nil
}

func (c *RedisGeocodeCache) Get(ctx context.Context, key string) (_ []ports.GeocodeResult, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Get")(&err)

	payload, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var results []ports.GeocodeResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, false, fmt.Errorf("get geocode cache: decode results: %w", err)
	}

	return results, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, key string, results []ports.GeocodeResult) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode results: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}
