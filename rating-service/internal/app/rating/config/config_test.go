package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8083", cfg.Server.Address())
	assert.Equal(t, "rating_service", cfg.MongoDB.Database)
	assert.Equal(t, "ride_completed", cfg.Kafka.Topic)
	assert.Equal(t, "rating-service", cfg.Kafka.GroupID)
	assert.Equal(t, 3, cfg.Directories.Client.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Directories.Client.InitialBackoff)
	assert.Equal(t, time.Second, cfg.Directories.Client.MaxBackoff)
	assert.Equal(t, 5*time.Second, cfg.Directories.Client.Timeout)
	assert.Equal(t, "@every 1h", cfg.Sweeper.Schedule)
	assert.Equal(t, 72*time.Hour, cfg.Sweeper.WindowTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DIRECTORY_MAX_ATTEMPTS", "5")
	t.Setenv("DIRECTORY_INITIAL_BACKOFF", "50ms")
	t.Setenv("RATING_WINDOW_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Directories.Client.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Directories.Client.InitialBackoff)
	assert.Equal(t, 24*time.Hour, cfg.Sweeper.WindowTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"DIRECTORY_TIMEOUT":      "soon",
		"DIRECTORY_MAX_ATTEMPTS": "0",
		"REDIS_DB":               "zero",
		"RATING_CACHE_TTL":       "-",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
