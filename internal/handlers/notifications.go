package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"towerup-backend/internal/logger"
	"towerup-backend/internal/telegram"
)

type NotificationHandler struct {
	relay   *telegram.Relay
	observe func(telegram.MessageType, error)
}

func NewNotificationHandler(relay *telegram.Relay) *NotificationHandler {
	return &NotificationHandler{relay: relay, observe: func(telegram.MessageType, error) {}}
}

func (h *NotificationHandler) OnResult(fn func(telegram.MessageType, error)) {
	h.observe = fn
}

// SendTelegram godoc
// @Summary     Relay a Telegram notification
// @Description Formats the payload by type and posts it to the Telegram Bot API in a single attempt. bot_token and chat_id fall back to server configuration.
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       request body     telegram.Payload true "Notification"
// @Success     200     {object} map[string]interface{}
// @Failure     400     {object} map[string]string
// @Failure     500     {object} map[string]string
// @Router      /functions/send-telegram-notification [post]
func (h *NotificationHandler) SendTelegram(c *gin.Context) {
	var p telegram.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.relay.Send(c.Request.Context(), p)
	h.observe(p.Type, err)
	if errors.Is(err, telegram.ErrMissingCredentials) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.FromContext(c).Error("telegram relay failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
