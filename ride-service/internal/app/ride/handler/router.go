package handler

import (
	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(rideHandler *RideHandler, authMiddleware *auth.Middleware, healthHandler *health.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("ride-service"))

	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rides := router.Group("/rides")
	rides.Use(authMiddleware.Authenticate())
	{
		rides.POST("", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleService, auth.RolePassenger), rideHandler.CreateRide)
		rides.GET("", rideHandler.ListRides)
		rides.GET("/:id", rideHandler.GetRide)
		rides.PUT("/:id", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleService), rideHandler.UpdateRide)
		rides.PATCH("/:id/status", rideHandler.UpdateStatus)
		rides.DELETE("/:id", authMiddleware.RequireRole(auth.RoleAdmin), rideHandler.DeleteRide)
	}

	return router
}
