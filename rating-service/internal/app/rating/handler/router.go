package handler

import (
	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(ratingHandler *RatingHandler, authMiddleware *auth.Middleware, healthHandler *health.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("rating-service"))

	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ratings := router.Group("/ratings")
	ratings.Use(authMiddleware.Authenticate())
	{
		ratings.POST("", ratingHandler.CreateRating)
		ratings.GET("", ratingHandler.ListRatings)
		ratings.GET("/windows", ratingHandler.ListOpenWindows)
		ratings.GET("/drivers/:driver_id/average", ratingHandler.GetAverageRating)
		ratings.GET("/:id", ratingHandler.GetRating)
		ratings.PUT("/:id", ratingHandler.UpdateRating)
		ratings.DELETE("/:id", authMiddleware.RequireRole(auth.RoleAdmin), ratingHandler.DeleteRating)
	}

	return router
}
