package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/chat"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
)

const maxSessionIDLength = 128

type ChatHandler struct {
	chat *chat.Service
}

func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

func sessionID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("session_id"))
	if id == "" || len(id) > maxSessionIDLength {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid session id"})
		return "", false
	}
	return id, true
}

// GetHistory godoc
// @Summary     Chat history
// @Tags        chat
// @Produce     json
// @Param       session_id path    string true "Client-generated session ID"
// @Success     200        {array} chat.Message
// @Router      /api/v1/chat/{session_id}/history [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	history, err := h.chat.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "load", "chat history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// ClearHistory godoc
// @Summary     Clear chat history
// @Tags        chat
// @Produce     json
// @Param       session_id path     string true "Client-generated session ID"
// @Success     200        {object} models.MessageResponse
// @Router      /api/v1/chat/{session_id}/history [delete]
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.chat.Clear(c.Request.Context(), id); err != nil {
		respondError(c, err, "clear", "chat history")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "chat history cleared"})
}

// SendMessage godoc
// @Summary     Send a chat message
// @Description Appends the message and the assistant's reply. Model failures produce a localized fallback reply chosen from Accept-Language.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Param       session_id path     string                    true "Client-generated session ID"
// @Param       request    body     models.ChatMessageRequest true "Message"
// @Success     200        {array}  chat.Message
// @Failure     400        {object} models.ErrorResponse
// @Failure     409        {object} models.ErrorResponse
// @Failure     503        {object} models.ErrorResponse
// @Router      /api/v1/chat/{session_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lang := chat.ResolveLanguage(c.GetHeader("Accept-Language"))
	history, err := h.chat.Send(c.Request.Context(), id, req.Message, lang)
	switch {
	case errors.Is(err, chat.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, chat.ErrBusy):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case err != nil:
		respondError(c, err, "send", "chat message")
	default:
		c.JSON(http.StatusOK, history)
	}
}
