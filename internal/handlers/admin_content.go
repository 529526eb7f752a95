package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// activeOr keeps the stored flag on update and defaults new rows to active.
func activeOr(in *bool, isNew bool, current bool) bool {
	if in != nil {
		return *in
	}
	if isNew {
		return true
	}
	return current
}

func NewNewsResource(repo store.Repository[models.News], rec *audit.Recorder) *Resource[models.News, models.NewsInput] {
	return &Resource[models.News, models.NewsInput]{
		Entity: "news",
		Repo:   repo,
		Order:  []store.Order{{Column: "published_at", Desc: true}},
		Audit:  rec,
		Apply: func(row *models.News, in *models.NewsInput) error {
			row.Title = strings.TrimSpace(in.Title)
			row.Summary = strings.TrimSpace(in.Summary)
			row.Content = in.Content
			row.Featured = in.Featured
			row.VideoURL = in.VideoURL
			row.Images = nonNil(in.Images)
			switch {
			case in.PublishedAt != nil:
				row.PublishedAt = in.PublishedAt.UTC()
			case row.PublishedAt.IsZero():
				row.PublishedAt = time.Now().UTC()
			}
			return nil
		},
		View: func(n models.News) any {
			return models.NewsView{News: n, Paragraphs: n.Paragraphs()}
		},
	}
}

func NewVacancyResource(repo store.Repository[models.Vacancy], rec *audit.Recorder) *Resource[models.Vacancy, models.VacancyInput] {
	return &Resource[models.Vacancy, models.VacancyInput]{
		Entity: "vacancy",
		Repo:   repo,
		Order:  []store.Order{{Column: "display_order"}, {Column: "created_at", Desc: true}},
		Audit:  rec,
		Apply: func(row *models.Vacancy, in *models.VacancyInput) error {
			row.IsActive = activeOr(in.IsActive, row.ID == uuid.Nil, row.IsActive)
			row.Title = strings.TrimSpace(in.Title)
			row.Location = strings.TrimSpace(in.Location)
			row.SalaryRange = in.SalaryRange
			row.Description = in.Description
			row.Requirements = in.Requirements
			row.Benefits = in.Benefits
			row.EmploymentType = in.EmploymentType
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
		Filter: activeFilter,
	}
}

func NewTenderResource(repo store.Repository[models.Tender], rec *audit.Recorder) *Resource[models.Tender, models.TenderInput] {
	return &Resource[models.Tender, models.TenderInput]{
		Entity: "tender",
		Repo:   repo,
		Order:  []store.Order{{Column: "created_at", Desc: true}},
		Audit:  rec,
		Apply: func(row *models.Tender, in *models.TenderInput) error {
			row.IsActive = activeOr(in.IsActive, row.ID == uuid.Nil, row.IsActive)
			row.Title = strings.TrimSpace(in.Title)
			row.Description = in.Description
			row.Category = in.Category
			row.Deadline = in.Deadline
			row.Documents = nonNil(in.Documents)
			return nil
		},
		Filter: activeFilter,
	}
}

func NewPartnerResource(repo store.Repository[models.Partner], rec *audit.Recorder) *Resource[models.Partner, models.PartnerInput] {
	return &Resource[models.Partner, models.PartnerInput]{
		Entity: "partner",
		Repo:   repo,
		Order:  []store.Order{{Column: "display_order"}, {Column: "name"}},
		Audit:  rec,
		Apply: func(row *models.Partner, in *models.PartnerInput) error {
			row.Name = strings.TrimSpace(in.Name)
			row.LogoURL = in.LogoURL
			row.WebsiteURL = in.WebsiteURL
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
	}
}

// activeFilter supports ?is_active=true|false on admin lists.
func activeFilter(c *gin.Context, q store.Query) (store.Query, error) {
	active, set, err := queryBool(c, "is_active")
	if err != nil {
		return q, err
	}
	if set {
		q = q.Where("is_active", active)
	}
	return q, nil
}
