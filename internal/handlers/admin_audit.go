package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/models"
)

type AuditHandler struct {
	recorder *audit.Recorder
}

func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// List godoc
// @Summary     List audit logs
// @Description Returns admin actions newest first. Audit logs are read-only.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       action_type query string false "Filter by action type"
// @Param       admin_email query string false "Filter by admin email"
// @Param       limit       query int    false "Maximum rows (default 100, max 1000)"
// @Success     200 {array}  models.AuditLog
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	logs, err := h.recorder.List(c.Request.Context(),
		c.Query("action_type"),
		c.Query("admin_email"),
		queryLimit(c, 100, 1000),
	)
	if err != nil {
		respondError(c, err, "list", "audit logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	c.JSON(http.StatusOK, logs)
}
