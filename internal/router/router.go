package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-manager/backend/config"
	"github.com/pageza/recipe-manager/backend/internal/api"
	"github.com/pageza/recipe-manager/backend/internal/middleware"
	"github.com/pageza/recipe-manager/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, recipeService service.IRecipeService, writeLimit gin.HandlerFunc, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.ErrorHandler(logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, recipeService, writeLimit)

	return router
}

// WriteRateLimit builds the limiter for mutating routes. Requests are counted
// in Redis when a client is given, with an in-process limiter covering Redis
// outages. It returns nil when rate limiting is disabled.
func WriteRateLimit(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) gin.HandlerFunc {
	if cfg.RateLimit <= 0 {
		return nil
	}

	limitCfg := middleware.RateLimitConfig{
		Window:    cfg.RateLimitWindow,
		Limit:     cfg.RateLimit,
		KeyPrefix: "rate_limit:recipe_write",
	}

	var primary middleware.Limiter
	if redisClient != nil {
		primary = middleware.NewRedisLimiter(redisClient, limitCfg)
	}
	return middleware.RateLimit(primary, middleware.NewLocalLimiter(limitCfg, nil), logger)
}
