package handlers

import (
	"net/http"

	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports service and dependency status.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// LivenessCheck handles kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// HealthCheck godoc
// @Summary Service health
// @Description Reports overall status and store reachability. Degrades to 503 when the store is down.
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Failure 503 {object} types.HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := types.HealthResponse{
		Status:   "healthy",
		Database: "up",
		Services: map[string]string{
			"upload":          "healthy",
			"recommendations": "healthy",
			"map":             "healthy",
		},
	}

	if err := h.store.Ping(c.Request.Context()); err != nil {
		logger.GetLogger().Warnw("Store ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
