package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/logger"
	"ridehail/rating-service/internal/app/rating/config"
	"ridehail/rating-service/internal/app/rating/handler"
	"ridehail/rating-service/internal/app/rating/infrastructure/directory"
	"ridehail/rating-service/internal/app/rating/processor"
	"ridehail/rating-service/internal/app/rating/repository"
	"ridehail/rating-service/internal/app/rating/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup("rating-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)
	ratingRepo := repository.NewRatingRepository(db)
	windowRepo := repository.NewWindowRepository(db)

	indexCtx, indexCancel := context.WithTimeout(ctx, 10*time.Second)
	for _, repo := range []interface{ EnsureIndexes(context.Context) error }{ratingRepo, windowRepo} {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to create indexes")
		}
	}
	indexCancel()

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	directoryClient := directory.NewClient(cfg.Directories.DriverURL, cfg.Directories.PassengerURL, cfg.Directories.Client)
	validator := service.NewAccessValidator(directoryClient)
	averageCache := repository.NewAverageCache(redisClient, cfg.Redis.TTL)
	ratingService := service.NewRatingService(ratingRepo, windowRepo, averageCache, validator)

	consumer := processor.NewKafkaConsumer(processor.ConsumerConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: cfg.Kafka.MinBytes,
		MaxBytes: cfg.Kafka.MaxBytes,
	}, ratingService)
	consumer.Start(ctx)

	sweeper := processor.NewWindowSweeper(ratingService, cfg.Sweeper.WindowTTL)
	if err := sweeper.Start(ctx, cfg.Sweeper.Schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Sweeper.Schedule).Msg("Failed to start rating window sweeper")
	}

	authMiddleware := auth.NewMiddleware(auth.NewTokenManager(cfg.JWT.Secret, 0))
	healthHandler := health.NewHandler("rating-service").
		With("mongodb", health.Mongo(mongoClient)).
		With("redis", health.Redis(redisClient)).
		With("kafka", health.Kafka(cfg.Kafka.Brokers))

	ratingHandler := handler.NewRatingHandler(ratingService)
	router := handler.SetupRoutes(ratingHandler, authMiddleware, healthHandler)

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
			Msg("Starting Rating Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Rating Service...")

	consumer.Stop()
	sweeper.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Rating Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = mongo.Connect(context.Background(), clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()
			if err == nil {
				return client, nil
			}

			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			if derr := client.Disconnect(disconnectCtx); derr != nil {
				logger.Warn().Err(derr).Msg("Failed to disconnect unhealthy MongoDB client")
			}
			disconnectCancel()
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	for i := 0; i < 10; i++ {
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Msg("Failed to connect to Redis, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts")
}
