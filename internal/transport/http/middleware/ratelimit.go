package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/easydev/internal/metrics"
	"github.com/ErlanBelekov/easydev/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

const errTooManyRequests = "Too many requests, please try again later"

// RateLimit keys the limiter by the authenticated user, so it must run after Auth.
// A limiter error lets the request through.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "ratelimit")

	return func(c *gin.Context) {
		key, ok := UserID(c)
		if !ok {
			key = c.ClientIP()
		}

		d, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))

		if !d.Allowed {
			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			metrics.RateLimitedTotal.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": errTooManyRequests})
			return
		}
		c.Next()
	}
}
