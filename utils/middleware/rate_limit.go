package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/utils/cache"
	"github.com/tutorslink/api/utils/response"
)

// FormRateLimiter throttles the public form endpoints (bookings,
// support messages) per source IP using a Redis fixed-window counter.
// With Redis unavailable requests pass through; legitimate users are
// never blocked by a cache outage.
type FormRateLimiter struct {
	redisCache *cache.RedisCache
	max        int64
	window     time.Duration
}

// NewFormRateLimiter creates a limiter allowing max submissions per
// window per IP.
func NewFormRateLimiter(redisCache *cache.RedisCache, max int64, window time.Duration) *FormRateLimiter {
	return &FormRateLimiter{
		redisCache: redisCache,
		max:        max,
		window:     window,
	}
}

// Limit is the middleware entry point. name scopes the counter so each
// form endpoint gets its own window.
func (l *FormRateLimiter) Limit(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.redisCache == nil {
			return c.Next()
		}

		key := fmt.Sprintf("form_limit:%s:%s", name, c.IP())
		count, err := l.redisCache.Incr(c.Context(), key, l.window)
		if err != nil {
			return c.Next()
		}

		if count > l.max {
			return response.TooManyRequests(c, "Too many submissions. Please try again later.")
		}
		return c.Next()
	}
}
