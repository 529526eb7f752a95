package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

func NewDepartmentResource(departments store.Repository[models.Department], staff store.Repository[models.StaffMember], rec *audit.Recorder) *Resource[models.Department, models.DepartmentInput] {
	return &Resource[models.Department, models.DepartmentInput]{
		Entity: "department",
		Repo:   departments,
		Order:  []store.Order{{Column: "display_order"}, {Column: "name"}},
		Audit:  rec,
		Apply: func(row *models.Department, in *models.DepartmentInput) error {
			row.Name = strings.TrimSpace(in.Name)
			row.Description = in.Description
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
		BeforeDelete: func(ctx context.Context, id uuid.UUID) error {
			n, err := staff.Count(ctx, store.Query{}.Where("department_id", id))
			if err != nil {
				return err
			}
			if n > 0 {
				return newConflict(fmt.Sprintf(
					"Cannot delete a department with %d assigned staff member(s). Reassign or remove them first.", n))
			}
			return nil
		},
	}
}

func NewStaffResource(repo store.Repository[models.StaffMember], rec *audit.Recorder) *Resource[models.StaffMember, models.StaffMemberInput] {
	return &Resource[models.StaffMember, models.StaffMemberInput]{
		Entity: "staff member",
		Repo:   repo,
		Order:  []store.Order{{Column: "display_order"}, {Column: "full_name"}},
		Audit:  rec,
		Apply: func(row *models.StaffMember, in *models.StaffMemberInput) error {
			row.DepartmentID = in.DepartmentID
			row.FullName = strings.TrimSpace(in.FullName)
			row.Position = strings.TrimSpace(in.Position)
			row.PhotoURL = in.PhotoURL
			row.DisplayOrder = in.DisplayOrder
			return nil
		},
		Filter: func(c *gin.Context, q store.Query) (store.Query, error) {
			raw := c.Query("department_id")
			if raw == "" {
				return q, nil
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				return q, err
			}
			return q.Where("department_id", id), nil
		},
	}
}
