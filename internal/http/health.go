package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/curator/internal/services"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Region    *string   `json:"region,omitempty"`
	Zone      *string   `json:"zone,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthController struct {
	health *services.HealthService
}

func NewHealthController(health *services.HealthService) *HealthController {
	return &HealthController{health: health}
}

// Status reports liveness and best-effort deployment placement
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	status := h.health.Status(c.Request.Context())

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status.Status,
		Version:   status.Version,
		Region:    status.Region,
		Zone:      status.Zone,
		Timestamp: status.Timestamp,
	})
}
