package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/profile_reviews/internal/config"
	"github.com/Pesokrava/profile_reviews/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/profile_reviews/internal/delivery/http"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/handler"
	"github.com/Pesokrava/profile_reviews/internal/pkg/cache"
	"github.com/Pesokrava/profile_reviews/internal/pkg/database"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/profile_reviews/internal/repository/cache"
	"github.com/Pesokrava/profile_reviews/internal/repository/postgres"
	"github.com/Pesokrava/profile_reviews/internal/usecase/product"
	"github.com/Pesokrava/profile_reviews/internal/usecase/profile"
	"github.com/Pesokrava/profile_reviews/internal/usecase/review"

	_ "github.com/Pesokrava/profile_reviews/docs"
)

// @title Profile Reviews API
// @version 1.0
// @description Authenticated user profile API: product reviews with soft delete, shipping addresses and order history.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/profile_reviews

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Reviews
// @tag.description The caller's product reviews

// @tag.name Products
// @tag.description Product catalog lookups

// @tag.name Profile
// @tag.description The caller's account

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting Profile Reviews API...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(ctx, cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(cfg.GetDatabaseURL(), appLogger); err != nil {
			appLogger.Fatal("Failed to run migrations", err)
		}
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(ctx, cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg.NATS.URL, "profile-reviews-api", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	if err := events.NewStreamConfig(publisher.JetStream(), cfg.NATS.Subject, appLogger).EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure review events stream", err)
	}

	redisCache := cacheRepo.NewRedisCache(redisClient, cfg.Cache.ProductTTL, cfg.Cache.UserReviewsTTL)

	productService := product.NewService(postgres.NewProductRepository(db), redisCache, appLogger)
	reviewService := review.NewService(
		postgres.NewReviewRepository(db),
		productService,
		redisCache,
		publisher,
		cfg.NATS.Subject,
		appLogger,
	)
	profileService := profile.NewService(
		postgres.NewUserRepository(db),
		postgres.NewShippingAddressRepository(db),
		postgres.NewOrderRepository(db),
		appLogger,
	)

	router := httpDelivery.NewRouter(
		httpDelivery.Handlers{
			Product: handler.NewProductHandler(productService, appLogger),
			Review:  handler.NewReviewHandler(reviewService, appLogger),
			Profile: handler.NewProfileHandler(profileService, appLogger),
		},
		cfg,
		appLogger,
		httpDelivery.HealthCheck{Name: "postgres", Check: db.PingContext},
		httpDelivery.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
		return
	}

	appLogger.Info("Server stopped gracefully")
}
