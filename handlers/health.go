package handlers

import (
	"net/http"

	"cafebooking/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

// HealthHandler handles GET /health with the latest dependency snapshot.
func (h *HealthHandler) HealthHandler(c *gin.Context) {
	if h.Monitor == nil {
		c.JSON(http.StatusOK, gin.H{"healthy": true})
		return
	}
	status := h.Monitor.Status()
	if status.CheckedAt.IsZero() {
		status = h.Monitor.Check(c.Request.Context())
	}
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
