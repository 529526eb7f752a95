package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdminUser is a back-office account. PasswordHash is part of the row so the
// PostgREST backend can store it; API responses use AdminProfile instead.
type AdminUser struct {
	Base
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"password_hash" gorm:"not null"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (AdminUser) TableName() string { return "admin_users" }

func (a AdminUser) Profile() AdminProfile {
	return AdminProfile{ID: a.ID.String(), Email: a.Email, Name: a.Name}
}

type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuditLog struct {
	Base
	ActionType string            `json:"action_type" gorm:"index;not null"`
	AdminEmail string            `json:"admin_email" gorm:"index"`
	Entity     string            `json:"entity"`
	EntityID   string            `json:"entity_id"`
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	DeviceType string            `json:"device_type"`
	Browser    string            `json:"browser"`
	OS         string            `json:"os"`
	Details    datatypes.JSONMap `json:"details"`
}

func (AuditLog) TableName() string { return "audit_logs" }
