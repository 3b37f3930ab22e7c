package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Backends BackendsConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type BackendsConfig struct {
	DriverURL    string
	PassengerURL string
	RatingURL    string
	RideURL      string
	// Timeout bounds dialing and waiting for response headers from a backend.
	Timeout time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("GATEWAY_BACKEND_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_BACKEND_TIMEOUT value: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Backends: BackendsConfig{
			DriverURL:    getEnv("DRIVER_SERVICE_URL", "http://localhost:8081"),
			PassengerURL: getEnv("PASSENGER_SERVICE_URL", "http://localhost:8082"),
			RatingURL:    getEnv("RATING_SERVICE_URL", "http://localhost:8083"),
			RideURL:      getEnv("RIDE_SERVICE_URL", "http://localhost:8084"),
			Timeout:      timeout,
		},
		CORS: CORSConfig{
			AllowOrigins: strings.Split(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ","),
		},
	}

	for name, raw := range map[string]string{
		"DRIVER_SERVICE_URL":    cfg.Backends.DriverURL,
		"PASSENGER_SERVICE_URL": cfg.Backends.PassengerURL,
		"RATING_SERVICE_URL":    cfg.Backends.RatingURL,
		"RIDE_SERVICE_URL":      cfg.Backends.RideURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid %s value: %q", name, raw)
		}
	}

	return cfg, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
