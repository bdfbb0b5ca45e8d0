package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Resource    string
	Limit       int
	Period      time.Duration
}

// RateLimiterMiddleware limits requests per client IP with a fixed window counter in Redis.
// Redis failures let the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf(constants.KeyRateLimit, config.Resource, c.RealIP())

			n, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable", logger.String("key", key), logger.Err(err))
				return next(c)
			}
			if n == 1 {
				config.RedisClient.Expire(ctx, key, config.Period)
			}

			count := int(n)
			remaining := config.Limit - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > config.Limit {
				ttl := config.RedisClient.TTL(ctx, key).Val()
				if ttl > 0 {
					c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				}
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

// IPRateLimiter creates a per-IP limiter for a named resource
func IPRateLimiter(resource string, limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Resource:    resource,
		Limit:       limit,
		Period:      period,
	})
}
