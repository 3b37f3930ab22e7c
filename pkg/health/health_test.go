package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := gin.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	h := NewHandler("driver-service").With("redis", Redis(client))

	w := serve(h, "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "driver-service", resp.Service)
	assert.Equal(t, "healthy", resp.Checks["redis"])
}

func TestHealthCheck_FailingDependency(t *testing.T) {
	h := NewHandler("rating-service").
		With("mongodb", func(ctx context.Context) error { return errors.New("connection refused") })

	w := serve(h, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unhealthy: connection refused", resp.Checks["mongodb"])
}

func TestReadinessAndLiveness(t *testing.T) {
	h := NewHandler("ride-service").
		With("database", func(ctx context.Context) error { return errors.New("down") })

	w := serve(h, "/health/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "database not ready", w.Body.String())

	w = serve(h, "/health/liveness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", w.Body.String())
}
