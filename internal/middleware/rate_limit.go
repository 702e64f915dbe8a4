package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter in Redis keyed by user id, falling
// back to client IP for anonymous requests.
type RateLimiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: client, prefix: prefix, limit: limit, window: window}
}

// Allow counts one hit for id and reports whether it is within the limit.
func (r *RateLimiter) Allow(ctx context.Context, id string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", r.prefix, id)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.redis.Expire(ctx, key, r.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(r.limit), nil
}

// Middleware fails open when Redis is unavailable.
func (r *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := "ip:" + c.RealIP()
			if claims, ok := CurrentUser(c); ok {
				id = "user:" + claims.UserID()
			}

			allowed, err := r.Allow(c.Request().Context(), id)
			if err != nil {
				log.Printf("[RateLimiter] redis error, allowing request: %v", err)
				return next(c)
			}
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(r.window.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
