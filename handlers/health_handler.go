package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shopsquad/shopsquad-backend/logger"
)

// HealthHandler reports liveness and dependency readiness.
type HealthHandler struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		redisClient: redisClient,
	}
}

// LivenessCheck handles GET /health/liveness.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadinessCheck handles GET /health/readiness. It pings the database and
// Redis with a short deadline.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	log := logger.GetLogger()
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if err := h.pool.Ping(ctx); err != nil {
		log.Warnw("Database readiness check failed", "error", err)
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("Redis readiness check failed", "error", err)
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	c.JSON(status, checks)
}
