package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/shopsquad/shopsquad-backend/errors"
)

// AuthRateLimiter limits authentication attempts per client IP using Redis
// INCR/EXPIRE windows. Redis being down never blocks a request.
func AuthRateLimiter(redisClient *redis.Client, requestsPerWindow int, window time.Duration) gin.HandlerFunc {
	return rateLimiter(redisClient, requestsPerWindow, window, func(c *gin.Context) string {
		return fmt.Sprintf("ratelimit:auth:%s", getClientIP(c))
	})
}

// MutationRateLimiter limits item mutations per authenticated user. It runs
// after AuthMiddleware.
func MutationRateLimiter(redisClient *redis.Client, requestsPerWindow int, window time.Duration) gin.HandlerFunc {
	return rateLimiter(redisClient, requestsPerWindow, window, func(c *gin.Context) string {
		return fmt.Sprintf("ratelimit:mutation:%s", c.GetString(UserIDKey))
	})
}

func rateLimiter(redisClient *redis.Client, requestsPerWindow int, window time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)

		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			// Fail open so the API stays available without Redis.
			c.Next()
			return
		}

		count := incr.Val()
		if count > int64(requestsPerWindow) {
			ttl, err := redisClient.TTL(c.Request.Context(), key).Result()
			if err != nil || ttl < 0 {
				ttl = window
			}

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerWindow))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))

			_ = c.Error(apperrors.RateLimitExceeded("Too many requests. Please try again later.", int(ttl.Seconds())))
			c.Abort()
			return
		}

		remaining := requestsPerWindow - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerWindow))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		c.Next()
	}
}

// getClientIP prefers proxy headers over RemoteAddr.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
