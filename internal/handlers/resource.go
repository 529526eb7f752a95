package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

// Audit log action types.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionReorder      = "reorder"
	ActionStatusChange = "status_change"
	ActionUpload       = "upload"
	ActionLogin        = "login"
)

// Resource serves admin CRUD for one table. Input is bound and validated
// before any store call.
type Resource[T any, In any] struct {
	// Entity names the table in audit records and error messages.
	Entity string
	Repo   store.Repository[T]
	Order  []store.Order
	Audit  *audit.Recorder

	// Apply copies validated input onto a new or existing row.
	Apply func(row *T, in *In) error
	// Filter narrows the list from query parameters. Optional.
	Filter func(c *gin.Context, q store.Query) (store.Query, error)
	// BeforeDelete may refuse a delete, typically with ErrConflict. Optional.
	BeforeDelete func(ctx context.Context, id uuid.UUID) error
	// AfterDelete runs once the row is gone. Optional.
	AfterDelete func(ctx context.Context, id uuid.UUID)
	// View shapes rows for responses. Optional.
	View func(row T) any
}

func (r *Resource[T, In]) Register(g *gin.RouterGroup, path string) {
	g.GET(path, r.List)
	g.POST(path, r.Create)
	g.GET(path+"/:id", r.Get)
	g.PUT(path+"/:id", r.Update)
	g.DELETE(path+"/:id", r.Delete)
}

func (r *Resource[T, In]) view(row T) any {
	if r.View != nil {
		return r.View(row)
	}
	return row
}

func rowID[T any](row *T) string {
	if v, ok := any(row).(interface{ GetID() uuid.UUID }); ok {
		return v.GetID().String()
	}
	return ""
}

// List godoc
// @Summary     List rows of an admin table
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200  {array}  object
// @Failure     401  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects [get]
// @Router      /api/v1/admin/news [get]
// @Router      /api/v1/admin/vacancies [get]
// @Router      /api/v1/admin/tenders [get]
// @Router      /api/v1/admin/partners [get]
// @Router      /api/v1/admin/floor-plans [get]
// @Router      /api/v1/admin/floor-prices [get]
// @Router      /api/v1/admin/departments [get]
// @Router      /api/v1/admin/staff [get]
func (r *Resource[T, In]) List(c *gin.Context) {
	q := store.Query{Order: r.Order}
	if r.Filter != nil {
		var err error
		if q, err = r.Filter(c, q); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid filter", Message: err.Error()})
			return
		}
	}

	rows, err := r.Repo.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", r.Entity)
		return
	}
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = r.view(rows[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary     Get one row of an admin table
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id   path     string true "Row ID"
// @Success     200  {object} object
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id} [get]
// @Router      /api/v1/admin/news/{id} [get]
// @Router      /api/v1/admin/vacancies/{id} [get]
// @Router      /api/v1/admin/tenders/{id} [get]
// @Router      /api/v1/admin/partners/{id} [get]
// @Router      /api/v1/admin/floor-plans/{id} [get]
// @Router      /api/v1/admin/floor-prices/{id} [get]
// @Router      /api/v1/admin/departments/{id} [get]
// @Router      /api/v1/admin/staff/{id} [get]
func (r *Resource[T, In]) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	row, err := r.Repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get", r.Entity)
		return
	}
	c.JSON(http.StatusOK, r.view(*row))
}

// Create godoc
// @Summary     Create a row in an admin table
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Accept      json
// @Param       body body     object true "Row fields"
// @Success     201  {object} object
// @Failure     400  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects [post]
// @Router      /api/v1/admin/news [post]
// @Router      /api/v1/admin/vacancies [post]
// @Router      /api/v1/admin/tenders [post]
// @Router      /api/v1/admin/partners [post]
// @Router      /api/v1/admin/floor-plans [post]
// @Router      /api/v1/admin/floor-prices [post]
// @Router      /api/v1/admin/departments [post]
// @Router      /api/v1/admin/staff [post]
func (r *Resource[T, In]) Create(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var row T
	if err := r.Apply(&row, &in); err != nil {
		respondError(c, err, "create", r.Entity)
		return
	}
	if err := r.Repo.Create(c.Request.Context(), &row); err != nil {
		respondError(c, err, "create", r.Entity)
		return
	}

	recordAudit(c, r.Audit, ActionCreate, r.Entity, rowID(&row), nil)
	c.JSON(http.StatusCreated, r.view(row))
}

// Update godoc
// @Summary     Replace a row of an admin table
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Accept      json
// @Param       id   path     string true "Row ID"
// @Param       body body     object true "Row fields"
// @Success     200  {object} object
// @Failure     400  {object} models.ErrorResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id} [put]
// @Router      /api/v1/admin/news/{id} [put]
// @Router      /api/v1/admin/vacancies/{id} [put]
// @Router      /api/v1/admin/tenders/{id} [put]
// @Router      /api/v1/admin/partners/{id} [put]
// @Router      /api/v1/admin/floor-plans/{id} [put]
// @Router      /api/v1/admin/floor-prices/{id} [put]
// @Router      /api/v1/admin/departments/{id} [put]
// @Router      /api/v1/admin/staff/{id} [put]
func (r *Resource[T, In]) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	row, err := r.Repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "update", r.Entity)
		return
	}
	if err := r.Apply(row, &in); err != nil {
		respondError(c, err, "update", r.Entity)
		return
	}
	if err := r.Repo.Update(c.Request.Context(), row); err != nil {
		respondError(c, err, "update", r.Entity)
		return
	}

	recordAudit(c, r.Audit, ActionUpdate, r.Entity, id.String(), nil)
	c.JSON(http.StatusOK, r.view(*row))
}

// Delete godoc
// @Summary     Delete a row of an admin table
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id   path     string true "Row ID"
// @Success     200  {object} models.MessageResponse
// @Failure     404  {object} models.ErrorResponse
// @Failure     409  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id} [delete]
// @Router      /api/v1/admin/news/{id} [delete]
// @Router      /api/v1/admin/vacancies/{id} [delete]
// @Router      /api/v1/admin/tenders/{id} [delete]
// @Router      /api/v1/admin/partners/{id} [delete]
// @Router      /api/v1/admin/floor-plans/{id} [delete]
// @Router      /api/v1/admin/floor-prices/{id} [delete]
// @Router      /api/v1/admin/departments/{id} [delete]
// @Router      /api/v1/admin/staff/{id} [delete]
func (r *Resource[T, In]) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if r.BeforeDelete != nil {
		if err := r.BeforeDelete(c.Request.Context(), id); err != nil {
			respondError(c, err, "delete", r.Entity)
			return
		}
	}
	if err := r.Repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete", r.Entity)
		return
	}

	if r.AfterDelete != nil {
		r.AfterDelete(c.Request.Context(), id)
	}

	recordAudit(c, r.Audit, ActionDelete, r.Entity, id.String(), nil)
	c.JSON(http.StatusOK, models.MessageResponse{Message: r.Entity + " deleted"})
}
