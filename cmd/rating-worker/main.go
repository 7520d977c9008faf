package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/profile_reviews/internal/config"
	"github.com/Pesokrava/profile_reviews/internal/delivery/events"
	"github.com/Pesokrava/profile_reviews/internal/pkg/cache"
	"github.com/Pesokrava/profile_reviews/internal/pkg/database"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/profile_reviews/internal/repository/cache"
	"github.com/Pesokrava/profile_reviews/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	appLogger.Info("Starting rating worker...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.WaitForDB(ctx, cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	redisClient, err := cache.WaitForRedis(ctx, cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	redisCache := cacheRepo.NewRedisCache(redisClient, cfg.Cache.ProductTTL, cfg.Cache.UserReviewsTTL)
	calculator := worker.NewCalculator(db, redisCache, appLogger)
	ratingWorker := worker.NewRatingWorker(calculator, cfg.Worker.Debounce, appLogger)

	nc, err := events.Connect(cfg.NATS.URL, "profile-reviews-rating-worker", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		appLogger.Fatal("Failed to create JetStream context", err)
	}

	streamConfig := events.NewStreamConfig(js, cfg.NATS.Subject, appLogger)
	if err := streamConfig.EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}
	if err := streamConfig.EnsureConsumer(events.RatingConsumer); err != nil {
		appLogger.Fatal("Failed to ensure consumer", err)
	}

	consumer, err := events.NewPullConsumer(js, cfg.NATS.Subject, events.RatingConsumer, cfg.Worker.BatchSize, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to subscribe to review events", err)
	}
	defer consumer.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Run(ctx, ratingWorker.HandleEvent)
	}()

	<-ctx.Done()
	appLogger.Info("Received shutdown signal")
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := ratingWorker.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", err)
	}

	appLogger.Info("Rating worker stopped")
}
