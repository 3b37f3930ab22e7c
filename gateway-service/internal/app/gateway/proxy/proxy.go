// Package proxy forwards edge traffic to the backend services and answers
// with a degraded response when a backend cannot be reached.
package proxy

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"ridehail/pkg/apierror"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// APIPrefix is stripped before a request is handed to its backend.
const APIPrefix = "/api/v1"

// Backend is one routed service. An empty Fallback means failures surface as
// a plain 500.
type Backend struct {
	Name     string
	Prefix   string // e.g. /drivers
	Target   *url.URL
	Fallback string
}

func NewBackend(name, prefix, rawURL, fallback string) (Backend, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return Backend{}, fmt.Errorf("invalid %s backend url: %w", name, err)
	}
	return Backend{Name: name, Prefix: prefix, Target: target, Fallback: fallback}, nil
}

// FallbackMessage is the text served while a service is down.
func FallbackMessage(service string) string {
	return service + " is currently unavailable. Please try again later."
}

// New builds a reverse proxy for the backend that rewrites /api/v1/<prefix>
// to /<prefix> on the target.
func New(backend Backend, timeout time.Duration) *httputil.ReverseProxy {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	transport.ResponseHeaderTimeout = timeout

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(backend.Target)
			r.Out.URL.Path = singleJoin(backend.Target.Path, strings.TrimPrefix(r.In.URL.Path, APIPrefix))
			r.Out.URL.RawPath = ""
			r.Out.Host = backend.Target.Host
			r.SetXForwarded()
			if id := r.In.Header.Get(logger.RequestIDHeader); id != "" {
				r.Out.Header.Set(logger.RequestIDHeader, id)
			}
		},
		Transport:    transport,
		ErrorHandler: errorHandler(backend),
	}
}

// Handler adapts the proxy to gin.
func Handler(p *httputil.ReverseProxy) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.ServeHTTP(c.Writer, c.Request)
	}
}

func errorHandler(backend Backend) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error().
			Err(err).
			Str("backend", backend.Name).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Backend request failed")

		if backend.Fallback == "" {
			writeJSON(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		metrics.GatewayFallbacks.WithLabelValues(backend.Name).Inc()
		writeJSON(w, http.StatusServiceUnavailable, backend.Fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apierror.New(status, message)); err != nil {
		logger.Error().Err(err).Msg("Failed to write gateway error response")
	}
}

func singleJoin(a, b string) string {
	a = strings.TrimSuffix(a, "/")
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	return a + b
}
