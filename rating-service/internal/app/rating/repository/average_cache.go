package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ridehail/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const averageKeyPrefix = "rating:avg:"

// averageCache stores each driver's mean under a versioned key. Writers bump
// the version, so a reader that computed its mean before the write stores it
// under a key nobody reads anymore.
type averageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAverageCache(client *redis.Client, ttl time.Duration) AverageCache {
	return &averageCache{client: client, ttl: ttl}
}

func (c *averageCache) Version(ctx context.Context, driverID string) (int64, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	version, err := c.client.Get(ctx, versionKey(driverID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return 0, fmt.Errorf("failed to get average version: %w", err)
	}
	return version, nil
}

func (c *averageCache) Get(ctx context.Context, driverID string, version int64) (*float64, bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := c.client.Get(ctx, averageKey(driverID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, averageKeyPrefix)
			return nil, false, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, false, fmt.Errorf("failed to get average from cache: %w", err)
	}

	var avg *float64
	if err := json.Unmarshal(data, &avg); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal average: %w", err)
	}

	metrics.RecordCacheHit(serviceName, averageKeyPrefix)
	return avg, true, nil
}

func (c *averageCache) Set(ctx context.Context, driverID string, version int64, avg *float64) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(avg)
	if err != nil {
		return fmt.Errorf("failed to marshal average: %w", err)
	}

	if err := c.client.Set(ctx, averageKey(driverID, version), data, c.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set average in cache: %w", err)
	}
	return nil
}

// Invalidate moves the driver to a new version and drops the current entry.
func (c *averageCache) Invalidate(ctx context.Context, driverID string) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	version, err := c.client.Incr(ctx, versionKey(driverID)).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to bump average version: %w", err)
	}

	if err := c.client.Del(ctx, averageKey(driverID, version-1)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete average from cache: %w", err)
	}
	return nil
}

func averageKey(driverID string, version int64) string {
	return averageKeyPrefix + driverID + ":" + strconv.FormatInt(version, 10)
}

func versionKey(driverID string) string {
	return averageKeyPrefix + driverID + ":version"
}
