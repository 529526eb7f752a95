package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

// Entry describes one admin action.
type Entry struct {
	Action     string
	AdminEmail string
	Entity     string
	EntityID   string
	IPAddress  string
	UserAgent  string
	Details    map[string]any
}

// Recorder appends audit records. Recording never fails the caller's action.
type Recorder struct {
	logs store.Repository[models.AuditLog]
	log  *zap.Logger
}

func NewRecorder(logs store.Repository[models.AuditLog], log *zap.Logger) *Recorder {
	return &Recorder{logs: logs, log: log.Named("audit")}
}

func (r *Recorder) Record(ctx context.Context, e Entry) {
	device := ParseUserAgent(e.UserAgent)
	row := &models.AuditLog{
		ActionType: e.Action,
		AdminEmail: e.AdminEmail,
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		DeviceType: device.Type,
		Browser:    device.Browser,
		OS:         device.OS,
		Details:    datatypes.JSONMap(e.Details),
	}

	// The request may already be finished; the audit write gets its own deadline.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := r.logs.Create(writeCtx, row); err != nil {
		r.log.Error("failed to write audit log",
			zap.String("action", e.Action),
			zap.String("admin_email", e.AdminEmail),
			zap.Error(err),
		)
	}
}

// List returns audit records newest first.
func (r *Recorder) List(ctx context.Context, actionType, adminEmail string, limit int) ([]models.AuditLog, error) {
	q := store.Query{}
	if actionType != "" {
		q = q.Where("action_type", actionType)
	}
	if adminEmail != "" {
		q = q.Where("admin_email", adminEmail)
	}
	return r.logs.List(ctx, q.OrderBy("created_at", true).Take(limit))
}
