package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const driverKeyPrefix = "driver:"

type driverCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDriverCache(client *redis.Client, ttl time.Duration) DriverCache {
	return &driverCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) on a cache miss.
func (r *driverCache) Get(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, driverKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, driverKeyPrefix)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get driver from cache: %w", err)
	}

	var driver entity.Driver
	if err := json.Unmarshal(data, &driver); err != nil {
		return nil, fmt.Errorf("failed to unmarshal driver: %w", err)
	}

	metrics.RecordCacheHit(serviceName, driverKeyPrefix)
	return &driver, nil
}

func (r *driverCache) Set(ctx context.Context, driver *entity.Driver) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(driver)
	if err != nil {
		return fmt.Errorf("failed to marshal driver: %w", err)
	}

	if err := r.client.Set(ctx, driverKey(driver.ID), data, r.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set driver in cache: %w", err)
	}
	return nil
}

func (r *driverCache) Delete(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, driverKey(id)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete driver from cache: %w", err)
	}
	return nil
}

func driverKey(id uuid.UUID) string {
	return driverKeyPrefix + id.String()
}
