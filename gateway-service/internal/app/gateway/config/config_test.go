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

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "http://localhost:8081", cfg.Backends.DriverURL)
	assert.Equal(t, "http://localhost:8084", cfg.Backends.RideURL)
	assert.Equal(t, 10*time.Second, cfg.Backends.Timeout)
}

func TestLoad_InvalidBackendURL(t *testing.T) {
	t.Setenv("RIDE_SERVICE_URL", "ride-service:8084")

	_, err := Load()
	assert.ErrorContains(t, err, "RIDE_SERVICE_URL")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("GATEWAY_BACKEND_TIMEOUT", "ten")

	_, err := Load()
	assert.Error(t, err)
}
