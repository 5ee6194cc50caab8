// Package ratelimit throttles tool requests per client address.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/logger"
)

const (
	keyPrefix = "devassist:ratelimit"

	limitMessage = "Too many requests. Please wait a moment before generating again."
)

// per-client request limiter backed by memory or redis
type Limiter struct {
	instance *limiter.Limiter
	client   *redis.Client
}

// creates a limiter from an ulule rate such as "60-M"; an empty redisURL keeps counters in memory
func New(formatted, redisURL string) (*Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	if redisURL == "" {
		store := memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          keyPrefix,
			CleanUpInterval: time.Minute,
		})

		return &Limiter{instance: limiter.New(store, rate)}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: keyPrefix,
	})
	if err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	logger.Info("rate limiter using redis store")

	return &Limiter{instance: limiter.New(store, rate), client: client}, nil
}

// returns the gin middleware; store failures let the request through
func (l *Limiter) Middleware() gin.HandlerFunc {
	return mgin.NewMiddleware(l.instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.FromContext(c.Request.Context()).Info("rate limit reached", "client_ip", c.ClientIP())
			errors.TooManyRequests(c, limitMessage)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.FromContext(c.Request.Context()).Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
		}),
	)
}

// closes the redis connection if one was opened
func (l *Limiter) Close() error {
	if l.client == nil {
		return nil
	}

	return l.client.Close()
}
