package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

// ContentHandler serves news, vacancies, tenders, partners and the team page.
type ContentHandler struct {
	repos *store.Repositories
}

func NewContentHandler(repos *store.Repositories) *ContentHandler {
	return &ContentHandler{repos: repos}
}

// ListNews godoc
// @Summary     List news
// @Description Newest first. Each item carries its content split into paragraphs.
// @Tags        content
// @Produce     json
// @Param       featured query bool false "Only featured news"
// @Param       limit    query int  false "Maximum items (default 20, max 100)"
// @Success     200 {array}  models.NewsView
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/v1/news [get]
func (h *ContentHandler) ListNews(c *gin.Context) {
	q := store.Query{}.OrderBy("published_at", true).Take(queryLimit(c, 20, 100))

	featured, set, err := queryBool(c, "featured")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid featured flag"})
		return
	}
	if set {
		q = q.Where("featured", featured)
	}

	news, err := h.repos.News.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", "news")
		return
	}
	views := make([]models.NewsView, len(news))
	for i, n := range news {
		views[i] = models.NewsView{News: n, Paragraphs: n.Paragraphs()}
	}
	c.JSON(http.StatusOK, views)
}

// GetNews godoc
// @Summary     Get a news article
// @Tags        content
// @Produce     json
// @Param       id  path     string true "News ID"
// @Success     200 {object} models.NewsView
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/v1/news/{id} [get]
func (h *ContentHandler) GetNews(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	n, err := h.repos.News.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get", "news")
		return
	}
	c.JSON(http.StatusOK, models.NewsView{News: *n, Paragraphs: n.Paragraphs()})
}

// ListVacancies godoc
// @Summary     List open vacancies
// @Tags        content
// @Produce     json
// @Success     200 {array} models.Vacancy
// @Router      /api/v1/vacancies [get]
func (h *ContentHandler) ListVacancies(c *gin.Context) {
	q := store.Query{}.Where("is_active", true).OrderBy("display_order", false).OrderBy("created_at", true)
	vacancies, err := h.repos.Vacancies.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", "vacancies")
		return
	}
	c.JSON(http.StatusOK, vacancies)
}

// GetVacancy godoc
// @Summary     Get an open vacancy
// @Tags        content
// @Produce     json
// @Param       id  path     string true "Vacancy ID"
// @Success     200 {object} models.Vacancy
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/v1/vacancies/{id} [get]
func (h *ContentHandler) GetVacancy(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	v, err := h.repos.Vacancies.Get(c.Request.Context(), id)
	if err == nil && !v.IsActive {
		err = store.ErrNotFound
	}
	if err != nil {
		respondError(c, err, "get", "vacancy")
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListTenders godoc
// @Summary     List active tenders
// @Tags        content
// @Produce     json
// @Success     200 {array} models.Tender
// @Router      /api/v1/tenders [get]
func (h *ContentHandler) ListTenders(c *gin.Context) {
	q := store.Query{}.Where("is_active", true).OrderBy("created_at", true)
	tenders, err := h.repos.Tenders.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", "tenders")
		return
	}
	c.JSON(http.StatusOK, tenders)
}

// ListPartners godoc
// @Summary     List partners
// @Tags        content
// @Produce     json
// @Success     200 {array} models.Partner
// @Router      /api/v1/partners [get]
func (h *ContentHandler) ListPartners(c *gin.Context) {
	q := store.Query{}.OrderBy("display_order", false).OrderBy("name", false)
	partners, err := h.repos.Partners.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list", "partners")
		return
	}
	c.JSON(http.StatusOK, partners)
}

// GetTeam godoc
// @Summary     Team page
// @Description Departments in display order, each with its staff
// @Tags        content
// @Produce     json
// @Success     200 {array} models.DepartmentView
// @Router      /api/v1/team [get]
func (h *ContentHandler) GetTeam(c *gin.Context) {
	ctx := c.Request.Context()
	departments, err := h.repos.Departments.List(ctx, store.Query{}.OrderBy("display_order", false).OrderBy("name", false))
	if err != nil {
		respondError(c, err, "list", "departments")
		return
	}
	staff, err := h.repos.Staff.List(ctx, store.Query{}.OrderBy("display_order", false).OrderBy("full_name", false))
	if err != nil {
		respondError(c, err, "list", "staff")
		return
	}

	byDepartment := make(map[string][]models.StaffMember, len(departments))
	for _, s := range staff {
		key := s.DepartmentID.String()
		byDepartment[key] = append(byDepartment[key], s)
	}
	views := make([]models.DepartmentView, len(departments))
	for i, d := range departments {
		members := byDepartment[d.ID.String()]
		if members == nil {
			members = []models.StaffMember{}
		}
		views[i] = models.DepartmentView{Department: d, Staff: members}
	}
	c.JSON(http.StatusOK, views)
}
