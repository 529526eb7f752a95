package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"towerup-backend/internal/logger"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

type HealthHandler struct {
	projects store.Repository[models.Project]
}

// NewHealthHandler checks the store through projects, bypassing the query
// cache so a stale count cannot hide an outage.
func NewHealthHandler(projects store.Repository[models.Project]) *HealthHandler {
	return &HealthHandler{projects: store.Uncached(projects)}
}

// Check godoc
// @Summary     Health check
// @Description Reports whether the API can reach the content store
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Failure     503 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := models.HealthResponse{Status: "ok", Store: "ok", Time: time.Now().UTC()}
	if _, err := h.projects.Count(c.Request.Context(), store.Query{}); err != nil {
		logger.FromContext(c).Warn("health check: store unreachable", zap.Error(err))
		resp.Status, resp.Store = "degraded", "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
