package handler

import (
	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(passengerHandler *PassengerHandler, authMiddleware *auth.Middleware, healthHandler *health.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("passenger-service"))

	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	passengers := router.Group("/passengers")
	passengers.Use(authMiddleware.Authenticate())
	{
		passengers.POST("", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleService), passengerHandler.CreatePassenger)
		passengers.GET("", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleService), passengerHandler.ListPassengers)
		passengers.GET("/:id", passengerHandler.GetPassenger)
		passengers.PUT("/:id", passengerHandler.UpdatePassenger)
		passengers.DELETE("/:id", passengerHandler.DeletePassenger)
	}

	return router
}
