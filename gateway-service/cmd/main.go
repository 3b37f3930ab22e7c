package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridehail/gateway-service/internal/app/gateway/config"
	"ridehail/gateway-service/internal/app/gateway/handler"
	"ridehail/gateway-service/internal/app/gateway/proxy"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup("gateway-service")

	backends, err := buildBackends(cfg.Backends)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid backend configuration")
	}
	for _, b := range backends {
		logger.Info().
			Str("backend", b.Name).
			Str("prefix", proxy.APIPrefix+b.Prefix).
			Str("target", b.Target.String()).
			Msg("Registered route")
	}

	router := handler.SetupRoutes(handler.RouterConfig{
		Backends:     backends,
		Timeout:      cfg.Backends.Timeout,
		AllowOrigins: cfg.CORS.AllowOrigins,
	}, health.NewHandler("gateway-service"))

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Gateway")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Gateway stopped gracefully")
}

func buildBackends(cfg config.BackendsConfig) ([]proxy.Backend, error) {
	specs := []struct {
		name, prefix, url, service string
	}{
		{"driver", "/drivers", cfg.DriverURL, "Driver Service"},
		{"passenger", "/passengers", cfg.PassengerURL, "Passenger Service"},
		{"rating", "/ratings", cfg.RatingURL, "Rating Service"},
		{"ride", "/rides", cfg.RideURL, "Ride Service"},
	}

	backends := make([]proxy.Backend, 0, len(specs))
	for _, s := range specs {
		b, err := proxy.NewBackend(s.name, s.prefix, s.url, proxy.FallbackMessage(s.service))
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return backends, nil
}
