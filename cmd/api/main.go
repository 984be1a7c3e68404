package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-manager/backend/config"
	"github.com/pageza/recipe-manager/backend/internal/database"
	"github.com/pageza/recipe-manager/backend/internal/logging"
	"github.com/pageza/recipe-manager/backend/internal/model"
	"github.com/pageza/recipe-manager/backend/internal/router"
	"github.com/pageza/recipe-manager/backend/internal/server"
	"github.com/pageza/recipe-manager/backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "environment", config.GetEnvironment(), "store", cfg.StoreDriver)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	recipeStore, closeStore, err := database.NewRecipeStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Redis is optional; without it rate limits are per process
	var redisClient *redis.Client
	if cfg.RedisURL != "" || cfg.RedisHost != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			slog.Warn("redis unavailable, using local rate limiter", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	recipeService := service.NewRecipeService(recipeStore, model.NewMapper(nil), logger)
	handler := router.SetupRouter(cfg, recipeService, router.WriteRateLimit(cfg, redisClient, logger), logger)

	if err := server.New(cfg, handler, logger).Start(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
