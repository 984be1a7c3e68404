package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"

	"github.com/pageza/recipe-manager/backend/internal/apperror"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter counts requests per key in fixed windows shared through Redis.
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	clock  clock.PassiveClock
}

// NewRedisLimiter creates a Redis backed limiter.
func NewRedisLimiter(client *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{redis: client, config: config, clock: clock.RealClock{}}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := rl.clock.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incrCmd.Val())
	return Decision{
		Allowed:   count <= rl.config.Limit,
		Limit:     rl.config.Limit,
		Remaining: max(rl.config.Limit-count, 0),
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

// LocalLimiter is a per-process token bucket per key. It refills Limit tokens
// evenly across Window.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   RateLimitConfig
	clock    clock.PassiveClock
}

// NewLocalLimiter creates an in-process limiter. A nil clock means the wall clock.
func NewLocalLimiter(config RateLimitConfig, c clock.PassiveClock) *LocalLimiter {
	if c == nil {
		c = clock.RealClock{}
	}
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   config,
		clock:    c,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.clock.Now()

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		every := l.config.Window / time.Duration(l.config.Limit)
		lim = rate.NewLimiter(rate.Every(every), l.config.Limit)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)
	return Decision{
		Allowed:   allowed,
		Limit:     l.config.Limit,
		Remaining: max(int(tokens), 0),
		Reset:     now.Add(l.config.Window),
	}, nil
}

// RateLimit enforces primary, switching to fallback for any request where
// primary fails. Keys are client IPs. A nil primary uses fallback alone.
func RateLimit(primary, fallback Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		var (
			decision Decision
			err      error
		)
		if primary != nil {
			decision, err = primary.Allow(c.Request.Context(), key)
		}
		if primary == nil || err != nil {
			if err != nil {
				logger.Warn("rate limit check failed, using local limiter", "error", err)
				rateLimitFallbacks.Inc()
			}
			if fallback == nil {
				c.Next()
				return
			}
			if decision, err = fallback.Allow(c.Request.Context(), key); err != nil {
				c.Next()
				return
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.Reset).Seconds())
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			_ = c.Error(apperror.TooManyRequests())
			c.Abort()
			return
		}

		c.Next()
	}
}
