package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type HealthResponse struct {
	Status string    `json:"status"`
	Store  string    `json:"store"`
	Time   time.Time `json:"time"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Admin     AdminProfile `json:"admin"`
}

type ProjectView struct {
	Project
	BadgeColor string `json:"badge_color"`
}

type NewsView struct {
	News
	Paragraphs []string `json:"paragraphs"`
}

type FloorPlanView struct {
	FloorPlan
	TotalPrice          decimal.Decimal `json:"total_price"`
	TotalPriceFormatted string          `json:"total_price_formatted"`
}

type DepartmentView struct {
	Department
	Staff []StaffMember `json:"staff"`
}

type UploadResponse struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

type SubmissionResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
