package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/config"
)

// HealthHandler reports service health and which collaborators are wired.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	deliveryStatus := "disabled"
	if h.cfg.EmailFrom != "" {
		deliveryStatus = "enabled"
	}
	historyStatus := "disabled"
	if h.cfg.DatabaseURL != "" {
		historyStatus = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"model":          h.cfg.MistralModel,
		"email_delivery": deliveryStatus,
		"history":        historyStatus,
	})
}
