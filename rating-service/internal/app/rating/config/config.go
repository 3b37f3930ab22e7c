package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ridehail/rating-service/internal/app/rating/infrastructure/directory"
)

type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	JWT         JWTConfig
	Directories DirectoriesConfig
	Sweeper     SweeperConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig backs the driver average cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string // ride completed events
	GroupID  string
	MinBytes int
	MaxBytes int
}

type JWTConfig struct {
	Secret string
}

// DirectoriesConfig locates the driver and passenger directories used for
// access validation.
type DirectoriesConfig struct {
	DriverURL    string
	PassengerURL string
	Client       directory.RemoteClientConfig
}

type SweeperConfig struct {
	Schedule  string
	WindowTTL time.Duration
}

func Load() (*Config, error) {
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("RATING_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	remote := directory.DefaultRemoteClientConfig()
	if remote.Timeout, err = getEnvDuration("DIRECTORY_TIMEOUT", remote.Timeout); err != nil {
		return nil, err
	}
	if remote.MaxAttempts, err = getEnvInt("DIRECTORY_MAX_ATTEMPTS", remote.MaxAttempts); err != nil {
		return nil, err
	}
	if remote.InitialBackoff, err = getEnvDuration("DIRECTORY_INITIAL_BACKOFF", remote.InitialBackoff); err != nil {
		return nil, err
	}
	if remote.MaxBackoff, err = getEnvDuration("DIRECTORY_MAX_BACKOFF", remote.MaxBackoff); err != nil {
		return nil, err
	}
	if remote.MaxAttempts < 1 {
		return nil, fmt.Errorf("DIRECTORY_MAX_ATTEMPTS must be at least 1, got %d", remote.MaxAttempts)
	}

	windowTTL, err := getEnvDuration("RATING_WINDOW_TTL", 72*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8083"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "rating_service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:    getEnv("KAFKA_TOPIC", "ride_completed"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "rating-service"),
			MinBytes: 1,
			MaxBytes: 10e6,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Directories: DirectoriesConfig{
			DriverURL:    getEnv("DRIVER_SERVICE_URL", "http://localhost:8081"),
			PassengerURL: getEnv("PASSENGER_SERVICE_URL", "http://localhost:8082"),
			Client:       remote,
		},
		Sweeper: SweeperConfig{
			Schedule:  getEnv("RATING_SWEEP_SCHEDULE", "@every 1h"),
			WindowTTL: windowTTL,
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
