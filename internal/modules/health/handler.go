package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redispkg "github.com/habariblog/core/internal/pkg/redis"
	"gorm.io/gorm"
)

type Handler struct {
	db    *gorm.DB
	cache *redispkg.Client
}

func NewHandler(db *gorm.DB, cache *redispkg.Client) *Handler {
	return &Handler{db: db, cache: cache}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.check)
}

// check reports component health. Degraded dependencies turn the overall
// status to 503 so load balancers can drain the instance.
func (h *Handler) check(c *gin.Context) {
	ctx := c.Request.Context()

	components := gin.H{}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		components["database"] = "down"
		healthy = false
	} else {
		components["database"] = "up"
	}

	if h.cache == nil {
		components["redis"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		components["redis"] = "down"
		healthy = false
	} else {
		components["redis"] = "up"
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":     overall,
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
