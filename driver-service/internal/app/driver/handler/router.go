package handler

import (
	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(driverHandler *DriverHandler, authMiddleware *auth.Middleware, healthHandler *health.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("driver-service"))

	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	drivers := router.Group("/drivers")
	drivers.Use(authMiddleware.Authenticate())
	{
		drivers.POST("", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleService), driverHandler.CreateDriver)
		drivers.GET("", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleService), driverHandler.ListDrivers)
		// visibility of a single record is decided per caller in the service
		drivers.GET("/:id", driverHandler.GetDriver)
		drivers.PUT("/:id", driverHandler.UpdateDriver)
		drivers.DELETE("/:id", authMiddleware.RequireRole(auth.RoleAdmin), driverHandler.DeleteDriver)
	}

	return router
}
