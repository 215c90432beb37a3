package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/okaya/campusgate/internal/app/models/dto"
	"github.com/okaya/campusgate/internal/pkg/logger"
)

// RateLimiter enforces a per-IP fixed-window limit backed by redis, so the
// limit holds across instances. A redis outage fails open.
type RateLimiter struct {
	client    *redis.Client
	perMinute int
}

// NewRateLimiter creates a limiter allowing perMinute requests per client IP.
func NewRateLimiter(client *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{client: client, perMinute: perMinute}
}

// GinMiddleware returns the gin handler enforcing the limit.
func (l *RateLimiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.client == nil || l.perMinute <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/60)
		count, err := l.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(l.perMinute) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Too many requests").
				WithDetails("Rate limit exceeded, retry in a minute")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
