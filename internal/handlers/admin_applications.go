package handlers

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/services"
	"towerup-backend/internal/store"
)

type statusful[T any] interface {
	*T
	GetID() uuid.UUID
	SetStatus(s models.ApplicationStatus)
}

// Inbox serves one table of public submissions: list newest first with an
// optional ?status= filter, status changes and deletes. Any allowed status
// may be set from any other.
type Inbox[T any, P statusful[T]] struct {
	Entity   string
	Repo     store.Repository[T]
	Statuses []models.ApplicationStatus
	Audit    *audit.Recorder
	// AfterDelete runs once the row is gone. Optional.
	AfterDelete func(ctx context.Context, id uuid.UUID)
}

func (h *Inbox[T, P]) Register(g *gin.RouterGroup, path string) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.PATCH(path+"/:id/status", h.UpdateStatus)
	g.DELETE(path+"/:id", h.Delete)
}

func (h *Inbox[T, P]) allowed() string {
	names := make([]string, len(h.Statuses))
	for i, s := range h.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// List godoc
// @Summary     List submissions newest first
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       status query    string false "Status filter"
// @Param       limit  query    int    false "Max rows"
// @Success     200  {array}  object
// @Failure     400  {object} models.ErrorResponse
// @Router      /api/v1/admin/vacancy-applications [get]
// @Router      /api/v1/admin/tender-applications [get]
// @Router      /api/v1/admin/commercial-offers [get]
// @Router      /api/v1/admin/contact-messages [get]
func (h *Inbox[T, P]) List(c *gin.Context) {
	q := store.Query{}.OrderBy("created_at", true)
	if status := models.ApplicationStatus(c.Query("status")); status != "" {
		if !slices.Contains(h.Statuses, status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid status",
				Message: "status must be one of: " + h.allowed(),
			})
			return
		}
		q = q.Where("status", status)
	}
	if limit := queryLimit(c, 0, 500); limit > 0 {
		q = q.Take(limit)
	}

	rows, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", h.Entity)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get godoc
// @Summary     Get one submission
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id   path     string true "Row ID"
// @Success     200  {object} object
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/vacancy-applications/{id} [get]
// @Router      /api/v1/admin/tender-applications/{id} [get]
// @Router      /api/v1/admin/commercial-offers/{id} [get]
// @Router      /api/v1/admin/contact-messages/{id} [get]
func (h *Inbox[T, P]) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get", h.Entity)
		return
	}
	c.JSON(http.StatusOK, row)
}

// UpdateStatus godoc
// @Summary     Set the status of a submission
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Accept      json
// @Param       id   path     string true "Row ID"
// @Param       body body     models.StatusUpdateRequest true "New status"
// @Success     200  {object} object
// @Failure     400  {object} models.ErrorResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/vacancy-applications/{id}/status [patch]
// @Router      /api/v1/admin/tender-applications/{id}/status [patch]
// @Router      /api/v1/admin/commercial-offers/{id}/status [patch]
// @Router      /api/v1/admin/contact-messages/{id}/status [patch]
func (h *Inbox[T, P]) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if !slices.Contains(h.Statuses, req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation failed",
			Details: map[string]string{"status": "Must be one of: " + h.allowed()},
		})
		return
	}

	ctx := c.Request.Context()
	row, err := h.Repo.Get(ctx, id)
	if err != nil {
		respondError(c, err, "update", h.Entity)
		return
	}
	P(row).SetStatus(req.Status)
	if err := h.Repo.Update(ctx, row); err != nil {
		respondError(c, err, "update", h.Entity)
		return
	}

	recordAudit(c, h.Audit, ActionStatusChange, h.Entity, id.String(), map[string]any{"status": string(req.Status)})
	c.JSON(http.StatusOK, row)
}

// Delete godoc
// @Summary     Delete a submission and its attachments
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id   path     string true "Row ID"
// @Success     200  {object} models.MessageResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/vacancy-applications/{id} [delete]
// @Router      /api/v1/admin/tender-applications/{id} [delete]
// @Router      /api/v1/admin/commercial-offers/{id} [delete]
// @Router      /api/v1/admin/contact-messages/{id} [delete]
func (h *Inbox[T, P]) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete", h.Entity)
		return
	}
	if h.AfterDelete != nil {
		h.AfterDelete(c.Request.Context(), id)
	}
	recordAudit(c, h.Audit, ActionDelete, h.Entity, id.String(), nil)
	c.JSON(http.StatusOK, models.MessageResponse{Message: h.Entity + " deleted"})
}

// removeAttachments drops the stored files of a deleted submission.
func removeAttachments(files *services.StorageService, kind string) func(context.Context, uuid.UUID) {
	if !files.Available() {
		return nil
	}
	return func(ctx context.Context, id uuid.UUID) {
		files.RemoveOwner(ctx, kind, id)
	}
}
