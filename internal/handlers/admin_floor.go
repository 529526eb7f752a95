package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

func NewFloorPlanResource(repo store.Repository[models.FloorPlan], rec *audit.Recorder) *Resource[models.FloorPlan, models.FloorPlanInput] {
	return &Resource[models.FloorPlan, models.FloorPlanInput]{
		Entity: "floor plan",
		Repo:   repo,
		Order:  []store.Order{{Column: "display_order"}, {Column: "area"}},
		Audit:  rec,
		Apply: func(row *models.FloorPlan, in *models.FloorPlanInput) error {
			if !in.Area.IsPositive() {
				return &FieldError{Field: "area", Message: "Must be greater than 0"}
			}
			if in.PricePerSqm.IsNegative() {
				return &FieldError{Field: "price_per_sqm", Message: "Must not be negative"}
			}
			row.ProjectID = in.ProjectID
			row.RoomType = strings.TrimSpace(in.RoomType)
			row.Area = in.Area
			row.PricePerSqm = in.PricePerSqm
			row.ImageURL = in.ImageURL
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
		Filter: projectFilter,
		View:   floorPlanView,
	}
}

func NewFloorPriceResource(repo store.Repository[models.FloorPrice], rec *audit.Recorder) *Resource[models.FloorPrice, models.FloorPriceInput] {
	return &Resource[models.FloorPrice, models.FloorPriceInput]{
		Entity: "floor price",
		Repo:   repo,
		Order:  []store.Order{{Column: "display_order"}},
		Audit:  rec,
		Apply: func(row *models.FloorPrice, in *models.FloorPriceInput) error {
			if in.PricePerSqm.IsNegative() {
				return &FieldError{Field: "price_per_sqm", Message: "Must not be negative"}
			}
			row.ProjectID = in.ProjectID
			row.RoomType = strings.TrimSpace(in.RoomType)
			row.PricePerSqm = in.PricePerSqm
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
		Filter: projectFilter,
	}
}

// projectFilter supports ?project_id= on floor plan and price lists.
func projectFilter(c *gin.Context, q store.Query) (store.Query, error) {
	raw := c.Query("project_id")
	if raw == "" {
		return q, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return q, err
	}
	return q.Where("project_id", id), nil
}
