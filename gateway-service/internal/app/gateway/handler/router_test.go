package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ridehail/gateway-service/internal/app/gateway/proxy"
	"ridehail/pkg/apierror"
	"ridehail/pkg/health"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          string
}

func newBackendServer(t *testing.T, seen *recordedRequest) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func backend(t *testing.T, name, prefix, rawURL, fallback string) proxy.Backend {
	b, err := proxy.NewBackend(name, prefix, rawURL, fallback)
	require.NoError(t, err)
	return b
}

// closedURL returns the address of a server that no longer accepts connections.
func closedURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	return server.URL
}

func newRouter(backends ...proxy.Backend) *gin.Engine {
	return SetupRoutes(RouterConfig{
		Backends:     backends,
		Timeout:      time.Second,
		AllowOrigins: []string{"http://localhost:3000"},
	}, health.NewHandler("gateway-service"))
}

// serve sends req to the router through a real listener. The reverse proxy
// needs the server's ResponseWriter, which a bare recorder does not provide.
func serve(t *testing.T, router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	server := httptest.NewServer(router)
	defer server.Close()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	req.URL.Scheme = target.Scheme
	req.URL.Host = target.Host
	req.Host = target.Host
	req.RequestURI = ""

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	w := httptest.NewRecorder()
	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, err = io.Copy(w, resp.Body)
	require.NoError(t, err)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apierror.Response {
	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProxy_ForwardsToBackend(t *testing.T) {
	var seen recordedRequest
	rides := newBackendServer(t, &seen)
	router := newRouter(backend(t, "ride", "/rides", rides.URL, proxy.FallbackMessage("Ride Service")))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/rides/42/status?dry=1", strings.NewReader(`{"status":"ACCEPTED"}`))
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("X-Request-ID", "req-1")
	w := serve(t, router, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, http.MethodPatch, seen.Method)
	assert.Equal(t, "/rides/42/status", seen.Path)
	assert.Equal(t, "dry=1", seen.Query)
	assert.Equal(t, "Bearer abc", seen.Authorization)
	assert.Equal(t, "req-1", seen.RequestID)
	assert.Equal(t, `{"status":"ACCEPTED"}`, seen.Body)
}

func TestProxy_CollectionRoot(t *testing.T) {
	var seen recordedRequest
	drivers := newBackendServer(t, &seen)
	router := newRouter(backend(t, "driver", "/drivers", drivers.URL, proxy.FallbackMessage("Driver Service")))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/drivers?page=2", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/drivers", seen.Path)
	assert.Equal(t, "page=2", seen.Query)
}

func TestProxy_UnreachableBackendServesFallback(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		service string
		path    string
	}{
		{"driver", "/drivers", "Driver Service", "/api/v1/drivers/1"},
		{"passenger", "/passengers", "Passenger Service", "/api/v1/passengers"},
		{"rating", "/ratings", "Rating Service", "/api/v1/ratings/drivers/1/average"},
		{"ride", "/rides", "Ride Service", "/api/v1/rides/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(backend(t, tt.name, tt.prefix, closedURL(), proxy.FallbackMessage(tt.service)))

			w := serve(t, router, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.service+" is currently unavailable. Please try again later.", resp.Error)
			assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
		})
	}
}

func TestProxy_UnreachableBackendWithoutFallback(t *testing.T) {
	router := newRouter(backend(t, "ride", "/rides", closedURL(), ""))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/rides", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w).Error)
}

func TestFallbackEndpoints(t *testing.T) {
	router := newRouter(
		backend(t, "driver", "/drivers", "http://localhost:1", proxy.FallbackMessage("Driver Service")),
		backend(t, "rating", "/ratings", "http://localhost:1", proxy.FallbackMessage("Rating Service")),
	)

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/fallback/driver", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Driver Service is currently unavailable. Please try again later.", decode(t, w).Error)

	w = serve(t, router, httptest.NewRequest(http.MethodPost, "/fallback/rating", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Rating Service is currently unavailable. Please try again later.", decode(t, w).Error)
}

func TestNoRoute(t *testing.T) {
	router := newRouter()

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/payments/1", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(t, router, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found", decode(t, w).Error)
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(backend(t, "ride", "/rides", "http://localhost:1", proxy.FallbackMessage("Ride Service")))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rides", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(t, router, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	router := newRouter()

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
