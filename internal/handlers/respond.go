package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/logger"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/services"
	"towerup-backend/internal/store"
)

// ErrConflict marks a mutation refused because of dependent rows.
var ErrConflict = errors.New("conflict")

// FieldError is a validation failure found after binding, e.g. a decimal
// that must be positive.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// respondError maps service and store errors to HTTP responses. action and
// entity build the 500 message, e.g. "failed to create news".
func respondError(c *gin.Context, err error, action, entity string) {
	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation failed",
			Details: map[string]string{fieldErr.Field: fieldErr.Message},
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: entity + " not found"})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "conflict", Message: conflictMessage(err)})
	case errors.Is(err, services.ErrTooManyAttachments),
		errors.Is(err, services.ErrAttachmentTooLarge),
		errors.Is(err, services.ErrEmptyAttachment):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid attachment", Message: err.Error()})
	case errors.Is(err, services.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: err.Error()})
	default:
		logger.FromContext(c).Error("request failed",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to " + action + " " + entity,
			Message: err.Error(),
		})
	}
}

func conflictMessage(err error) string {
	var ce *conflictError
	if errors.As(err, &ce) {
		return ce.message
	}
	return err.Error()
}

type conflictError struct {
	message string
}

func (e *conflictError) Error() string { return e.message }

func (e *conflictError) Unwrap() error { return ErrConflict }

func newConflict(message string) error {
	return &conflictError{message: message}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit reads ?limit=, falling back to def and capping at max.
func queryLimit(c *gin.Context, def, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// queryBool reads an optional true/false query parameter.
func queryBool(c *gin.Context, name string) (value bool, set bool, err error) {
	raw := c.Query(name)
	if raw == "" {
		return false, false, nil
	}
	value, err = strconv.ParseBool(raw)
	return value, err == nil, err
}

func recordAudit(c *gin.Context, rec *audit.Recorder, action, entity, entityID string, details map[string]any) {
	if rec == nil {
		return
	}
	rec.Record(c.Request.Context(), audit.Entry{
		Action:     action,
		AdminEmail: c.GetString(middleware.AdminEmailKey),
		Entity:     entity,
		EntityID:   entityID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Details:    details,
	})
}
