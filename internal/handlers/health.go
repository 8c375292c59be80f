package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/talenthub/internlens/internal/services"
	"github.com/talenthub/internlens/internal/store"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct {
	store store.LogStore
}

func NewHealthHandler(st store.LogStore) *HealthHandler {
	return &HealthHandler{store: st}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	storeStatus := "ok"
	if err := h.store.Ping(c.Request.Context()); err != nil {
		storeStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	status := 200
	if overall != "healthy" {
		status = 503
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": "internlens",
		"components": gin.H{
			"store":      storeStatus,
			"queue_mode": queueMode,
		},
	})
}
