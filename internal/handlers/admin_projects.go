package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/cache"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

// projectChildTables are removed by ON DELETE CASCADE together with a project.
var projectChildTables = []string{
	models.ProjectTimelineItem{}.TableName(),
	models.ProjectCharacteristic{}.TableName(),
	models.FloorPlan{}.TableName(),
	models.FloorPrice{}.TableName(),
}

// NewProjectResource serves project CRUD. qc may be nil; when set, cached
// child lists are dropped after a project delete cascades to them.
func NewProjectResource(repo store.Repository[models.Project], qc cache.QueryCache, rec *audit.Recorder) *Resource[models.Project, models.ProjectInput] {
	r := &Resource[models.Project, models.ProjectInput]{
		Entity: "project",
		Repo:   repo,
		Order:  []store.Order{{Column: "display_order"}, {Column: "created_at"}},
		Audit:  rec,
		Apply: func(row *models.Project, in *models.ProjectInput) error {
			row.Slug = normalizeSlug(in.Slug)
			row.Title = strings.TrimSpace(in.Title)
			row.Subtitle = in.Subtitle
			row.Description = in.Description
			row.Status = in.Status
			row.Location = in.Location
			row.Address = in.Address
			row.Images = nonNil(in.Images)
			row.CoverImage = in.CoverImage
			row.IsFuture = in.IsFuture
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
		View: projectView,
	}
	if qc != nil {
		r.AfterDelete = func(ctx context.Context, _ uuid.UUID) {
			for _, table := range projectChildTables {
				qc.InvalidateTable(ctx, table)
			}
		}
	}
	return r
}

type orderedChild[T any] interface {
	*T
	GetID() uuid.UUID
	SetDisplayOrder(order int)
	OwnerID() uuid.UUID
}

// ProjectChildren serves the ordered lists nested under a project: timeline
// items and characteristics.
type ProjectChildren[T any, In any, P orderedChild[T]] struct {
	Entity   string
	Projects store.Repository[models.Project]
	Repo     store.Repository[T]
	Audit    *audit.Recorder
	Apply    func(row *T, projectID uuid.UUID, in *In)
}

func (h *ProjectChildren[T, In, P]) Register(g *gin.RouterGroup, path string) {
	base := "/projects/:id/" + path
	g.GET(base, h.List)
	g.POST(base, h.Create)
	g.PUT(base+"/order", h.Reorder)
	g.PUT(base+"/:item_id", h.Update)
	g.DELETE(base+"/:item_id", h.Delete)
}

func (h *ProjectChildren[T, In, P]) project(c *gin.Context) (uuid.UUID, bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return uuid.Nil, false
	}
	if _, err := h.Projects.Get(c.Request.Context(), id); err != nil {
		respondError(c, err, "load", "project")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ProjectChildren[T, In, P]) list(ctx context.Context, projectID uuid.UUID) ([]T, error) {
	q := store.Query{}.Where("project_id", projectID).OrderBy("display_order", false).OrderBy("created_at", false)
	return h.Repo.List(ctx, q)
}

// item loads a child and checks it belongs to the project in the path.
func (h *ProjectChildren[T, In, P]) item(c *gin.Context, projectID uuid.UUID) (*T, bool) {
	id, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return nil, false
	}
	row, err := h.Repo.Get(c.Request.Context(), id)
	if err == nil && P(row).OwnerID() != projectID {
		err = store.ErrNotFound
	}
	if err != nil {
		respondError(c, err, "load", h.Entity)
		return nil, false
	}
	return row, true
}

// List godoc
// @Summary     List the ordered items of a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id      path     string true "Project ID"
// @Success     200  {array}  object
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id}/timeline [get]
// @Router      /api/v1/admin/projects/{id}/characteristics [get]
func (h *ProjectChildren[T, In, P]) List(c *gin.Context) {
	projectID, ok := h.project(c)
	if !ok {
		return
	}
	rows, err := h.list(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, "list", h.Entity)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Create godoc
// @Summary     Append an item to a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Accept      json
// @Param       id      path     string true "Project ID"
// @Param       body body     object true "Row fields"
// @Success     201  {object} object
// @Failure     400  {object} models.ErrorResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id}/timeline [post]
// @Router      /api/v1/admin/projects/{id}/characteristics [post]
func (h *ProjectChildren[T, In, P]) Create(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	projectID, ok := h.project(c)
	if !ok {
		return
	}

	var row T
	h.Apply(&row, projectID, &in)
	if err := h.Repo.Create(c.Request.Context(), &row); err != nil {
		respondError(c, err, "create", h.Entity)
		return
	}
	recordAudit(c, h.Audit, ActionCreate, h.Entity, P(&row).GetID().String(), map[string]any{"project_id": projectID.String()})
	c.JSON(http.StatusCreated, row)
}

// Update godoc
// @Summary     Replace an item of a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Accept      json
// @Param       id      path     string true "Project ID"
// @Param       item_id path     string true "Item ID"
// @Param       body body     object true "Row fields"
// @Success     200  {object} object
// @Failure     400  {object} models.ErrorResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id}/timeline/{item_id} [put]
// @Router      /api/v1/admin/projects/{id}/characteristics/{item_id} [put]
func (h *ProjectChildren[T, In, P]) Update(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	row, ok := h.item(c, projectID)
	if !ok {
		return
	}

	h.Apply(row, projectID, &in)
	if err := h.Repo.Update(c.Request.Context(), row); err != nil {
		respondError(c, err, "update", h.Entity)
		return
	}
	recordAudit(c, h.Audit, ActionUpdate, h.Entity, P(row).GetID().String(), nil)
	c.JSON(http.StatusOK, row)
}

// Delete godoc
// @Summary     Delete an item of a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id      path     string true "Project ID"
// @Param       item_id path     string true "Item ID"
// @Success     200  {object} models.MessageResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id}/timeline/{item_id} [delete]
// @Router      /api/v1/admin/projects/{id}/characteristics/{item_id} [delete]
func (h *ProjectChildren[T, In, P]) Delete(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	row, ok := h.item(c, projectID)
	if !ok {
		return
	}
	id := P(row).GetID()
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete", h.Entity)
		return
	}
	recordAudit(c, h.Audit, ActionDelete, h.Entity, id.String(), nil)
	c.JSON(http.StatusOK, models.MessageResponse{Message: h.Entity + " deleted"})
}

// Reorder sets display_order to each id's index. ids must list every child
// of the project exactly once.
//
// @Summary     Reorder the items of a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Accept      json
// @Param       id      path     string true "Project ID"
// @Param       body body     models.ReorderRequest true "Item IDs in display order"
// @Success     200  {array}  object
// @Failure     400  {object} models.ErrorResponse
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/admin/projects/{id}/timeline/order [put]
// @Router      /api/v1/admin/projects/{id}/characteristics/order [put]
func (h *ProjectChildren[T, In, P]) Reorder(c *gin.Context) {
	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	projectID, ok := h.project(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rows, err := h.list(ctx, projectID)
	if err != nil {
		respondError(c, err, "reorder", h.Entity)
		return
	}

	byID := make(map[uuid.UUID]*T, len(rows))
	for i := range rows {
		byID[P(&rows[i]).GetID()] = &rows[i]
	}
	if len(req.IDs) != len(rows) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid order",
			Message: "ids must list every item of the project exactly once",
		})
		return
	}
	seen := make(map[uuid.UUID]bool, len(req.IDs))
	for _, id := range req.IDs {
		if byID[id] == nil || seen[id] {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid order",
				Message: "unknown or repeated id " + id.String(),
			})
			return
		}
		seen[id] = true
	}

	ordered := make([]T, 0, len(req.IDs))
	for i, id := range req.IDs {
		row := byID[id]
		P(row).SetDisplayOrder(i)
		if err := h.Repo.Update(ctx, row); err != nil {
			respondError(c, err, "reorder", h.Entity)
			return
		}
		ordered = append(ordered, *row)
	}

	recordAudit(c, h.Audit, ActionReorder, h.Entity, projectID.String(), map[string]any{"count": len(ordered)})
	c.JSON(http.StatusOK, ordered)
}

func NewTimelineHandler(projects store.Repository[models.Project], repo store.Repository[models.ProjectTimelineItem], rec *audit.Recorder) *ProjectChildren[models.ProjectTimelineItem, models.TimelineItemInput, *models.ProjectTimelineItem] {
	return &ProjectChildren[models.ProjectTimelineItem, models.TimelineItemInput, *models.ProjectTimelineItem]{
		Entity:   "timeline item",
		Projects: projects,
		Repo:     repo,
		Audit:    rec,
		Apply: func(row *models.ProjectTimelineItem, projectID uuid.UUID, in *models.TimelineItemInput) {
			row.ProjectID = projectID
			row.Title = strings.TrimSpace(in.Title)
			row.Description = in.Description
			row.DateLabel = in.DateLabel
			row.IsDone = in.IsDone
			row.DisplayOrder = in.DisplayOrder
		},
	}
}

func NewCharacteristicHandler(projects store.Repository[models.Project], repo store.Repository[models.ProjectCharacteristic], rec *audit.Recorder) *ProjectChildren[models.ProjectCharacteristic, models.CharacteristicInput, *models.ProjectCharacteristic] {
	return &ProjectChildren[models.ProjectCharacteristic, models.CharacteristicInput, *models.ProjectCharacteristic]{
		Entity:   "characteristic",
		Projects: projects,
		Repo:     repo,
		Audit:    rec,
		Apply: func(row *models.ProjectCharacteristic, projectID uuid.UUID, in *models.CharacteristicInput) {
			row.ProjectID = projectID
			row.Label = strings.TrimSpace(in.Label)
			row.Value = strings.TrimSpace(in.Value)
			row.DisplayOrder = in.DisplayOrder
		},
	}
}
