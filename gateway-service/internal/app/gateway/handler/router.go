package handler

import (
	"net/http"
	"path"
	"time"

	"ridehail/gateway-service/internal/app/gateway/proxy"
	"ridehail/pkg/apierror"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Backends     []proxy.Backend
	Timeout      time.Duration
	AllowOrigins []string
}

func SetupRoutes(cfg RouterConfig, healthHandler *health.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("gateway-service"))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300 * time.Second,
	}))

	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group(proxy.APIPrefix)
	fallbacks := router.Group("/fallback")
	for _, backend := range cfg.Backends {
		forward := proxy.Handler(proxy.New(backend, cfg.Timeout))
		api.Any(backend.Prefix, forward)
		api.Any(backend.Prefix+"/*path", forward)

		if backend.Fallback != "" {
			fallbacks.Any("/"+backend.Name, fallbackHandler(backend.Fallback))
		}
	}

	router.NoRoute(noRoute)

	return router
}

func fallbackHandler(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apierror.Respond(c, http.StatusServiceUnavailable, message)
	}
}

// noRoute answers 404 for static resources and 503 for anything that looks
// like an API call no backend serves.
func noRoute(c *gin.Context) {
	if path.Ext(c.Request.URL.Path) != "" {
		apierror.Respond(c, http.StatusNotFound, "Resource not found")
		return
	}
	apierror.Respond(c, http.StatusServiceUnavailable, "No service available for "+c.Request.URL.Path)
}
