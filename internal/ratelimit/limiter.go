package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// redisTimeout bounds each limiter round trip
const redisTimeout = 500 * time.Millisecond

// Limiter is a fixed-window request counter stored in Redis. It implements
// middleware.RateLimiterStore.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewLimiter allows limit requests per identifier in each window
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		limit:  limit,
		window: window,
	}
}

// Allow counts a request for identifier. Redis failures are logged and the
// request is let through.
func (l *Limiter) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	exceeded, err := l.exceeded(ctx, identifier)
	if err != nil {
		log.Printf("Rate limiter unavailable, allowing request: %v", err)
		return true, nil
	}
	return !exceeded, nil
}

func (l *Limiter) exceeded(ctx context.Context, identifier string) (bool, error) {
	key := keyPrefix + identifier

	// The window starts with the first request; ExpireNX leaves a running window alone
	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to update rate limit: %w", err)
	}

	return incr.Val() > int64(l.limit), nil
}

// Middleware limits requests per client IP
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: l,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}
