package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	KV        string    `json:"kv,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	kv          *redis.Client
}

func NewHealthHandler(serviceName, version string, kv *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		kv:          kv,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	kvStatus := "disabled"
	if h.kv != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.kv.Ping(pingCtx).Err(); err != nil {
			kvStatus = "down"
		} else {
			kvStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		KV:        kvStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
