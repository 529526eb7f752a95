package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/models"
	"towerup-backend/internal/pricing"
	"towerup-backend/internal/store"
)

func projectView(p models.Project) any {
	return models.ProjectView{Project: p, BadgeColor: p.Status.BadgeColor()}
}

func floorPlanView(fp models.FloorPlan) any {
	total := pricing.Total(fp.Area, fp.PricePerSqm)
	return models.FloorPlanView{
		FloorPlan:           fp,
		TotalPrice:          total,
		TotalPriceFormatted: pricing.FormatAmount(total),
	}
}

// ProjectsHandler serves the public project showcase.
type ProjectsHandler struct {
	repos *store.Repositories
}

func NewProjectsHandler(repos *store.Repositories) *ProjectsHandler {
	return &ProjectsHandler{repos: repos}
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns projects in display order, each with its status badge color
// @Tags        projects
// @Produce     json
// @Param       status query string false "designing, building, completed, upcoming or active"
// @Param       future query bool   false "Only future (true) or only current (false) projects"
// @Success     200 {array}  models.ProjectView
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/v1/projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	q := store.Query{}.OrderBy("display_order", false).OrderBy("created_at", false)

	if status := models.ProjectStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status"})
			return
		}
		q = q.Where("status", status)
	}
	future, set, err := queryBool(c, "future")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid future flag"})
		return
	}
	if set {
		q = q.Where("is_future", future)
	}

	projects, err := h.repos.Projects.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", "projects")
		return
	}
	views := make([]models.ProjectView, len(projects))
	for i, p := range projects {
		views[i] = models.ProjectView{Project: p, BadgeColor: p.Status.BadgeColor()}
	}
	c.JSON(http.StatusOK, views)
}

// normalizeSlug matches how admin writes store slugs.
func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (h *ProjectsHandler) bySlug(ctx context.Context, slug string) (*models.Project, error) {
	return h.repos.Projects.FindOne(ctx, store.Query{}.Where("slug", normalizeSlug(slug)))
}

// GetProject godoc
// @Summary     Get project by slug
// @Tags        projects
// @Produce     json
// @Param       slug path     string true "Project slug"
// @Success     200  {object} models.ProjectView
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/projects/{slug} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	project, err := h.bySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "get", "project")
		return
	}
	c.JSON(http.StatusOK, projectView(*project))
}

// projectChildren resolves the slug and lists rows of a child table for it.
func projectChildren[T any](h *ProjectsHandler, c *gin.Context, repo store.Repository[T], entity string, order ...store.Order) ([]T, bool) {
	project, err := h.bySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "get", "project")
		return nil, false
	}
	rows, err := repo.List(c.Request.Context(), store.Query{Order: order}.Where("project_id", project.ID))
	if err != nil {
		respondError(c, err, "list", entity)
		return nil, false
	}
	return rows, true
}

// GetFloorPlans godoc
// @Summary     Project floor plans
// @Description Floor plans with total price (area × price per m²) computed on read
// @Tags        projects
// @Produce     json
// @Param       slug path     string true "Project slug"
// @Success     200  {array}  models.FloorPlanView
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/projects/{slug}/floor-plans [get]
func (h *ProjectsHandler) GetFloorPlans(c *gin.Context) {
	plans, ok := projectChildren(h, c, h.repos.FloorPlans, "floor plans",
		store.Order{Column: "display_order"}, store.Order{Column: "area"})
	if !ok {
		return
	}
	views := make([]any, len(plans))
	for i, fp := range plans {
		views[i] = floorPlanView(fp)
	}
	c.JSON(http.StatusOK, views)
}

// GetPrices godoc
// @Summary     Project price list
// @Tags        projects
// @Produce     json
// @Param       slug path     string true "Project slug"
// @Success     200  {array}  models.FloorPrice
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/projects/{slug}/prices [get]
func (h *ProjectsHandler) GetPrices(c *gin.Context) {
	prices, ok := projectChildren(h, c, h.repos.FloorPrices, "prices", store.Order{Column: "display_order"})
	if ok {
		c.JSON(http.StatusOK, prices)
	}
}

// GetTimeline godoc
// @Summary     Construction timeline
// @Tags        projects
// @Produce     json
// @Param       slug path     string true "Project slug"
// @Success     200  {array}  models.ProjectTimelineItem
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/projects/{slug}/timeline [get]
func (h *ProjectsHandler) GetTimeline(c *gin.Context) {
	items, ok := projectChildren(h, c, h.repos.Timeline, "timeline", store.Order{Column: "display_order"})
	if ok {
		c.JSON(http.StatusOK, items)
	}
}

// GetCharacteristics godoc
// @Summary     Project characteristics
// @Tags        projects
// @Produce     json
// @Param       slug path     string true "Project slug"
// @Success     200  {array}  models.ProjectCharacteristic
// @Failure     404  {object} models.ErrorResponse
// @Router      /api/v1/projects/{slug}/characteristics [get]
func (h *ProjectsHandler) GetCharacteristics(c *gin.Context) {
	items, ok := projectChildren(h, c, h.repos.Characteristics, "characteristics", store.Order{Column: "display_order"})
	if ok {
		c.JSON(http.StatusOK, items)
	}
}
