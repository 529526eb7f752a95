package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProjectInput struct {
	Slug         string        `json:"slug" binding:"required,max=120"`
	Title        string        `json:"title" binding:"required,max=200"`
	Subtitle     string        `json:"subtitle" binding:"max=300"`
	Description  string        `json:"description"`
	Status       ProjectStatus `json:"status" binding:"required,oneof=designing building completed upcoming active"`
	Location     string        `json:"location"`
	Address      string        `json:"address"`
	Images       []string      `json:"images" binding:"omitempty,dive,required"`
	CoverImage   string        `json:"cover_image"`
	IsFuture     bool          `json:"is_future"`
	DisplayOrder int           `json:"display_order" binding:"min=0"`
}

type TimelineItemInput struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	DateLabel    string `json:"date_label" binding:"max=100"`
	IsDone       bool   `json:"is_done"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

type CharacteristicInput struct {
	Label        string `json:"label" binding:"required,max=200"`
	Value        string `json:"value" binding:"required,max=500"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

type NewsInput struct {
	Title       string     `json:"title" binding:"required,max=300"`
	Summary     string     `json:"summary" binding:"required"`
	Content     string     `json:"content" binding:"required"`
	PublishedAt *time.Time `json:"published_at"`
	Featured    bool       `json:"featured"`
	VideoURL    string     `json:"video_url" binding:"omitempty,url"`
	Images      []string   `json:"images" binding:"omitempty,dive,required"`
}

type VacancyInput struct {
	Title          string `json:"title" binding:"required,max=200"`
	Location       string `json:"location" binding:"required"`
	SalaryRange    string `json:"salary_range"`
	Description    string `json:"description" binding:"required"`
	Requirements   string `json:"requirements"`
	Benefits       string `json:"benefits"`
	EmploymentType string `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	IsActive       *bool  `json:"is_active"`
	DisplayOrder   int    `json:"display_order" binding:"min=0"`
}

type TenderInput struct {
	Title       string     `json:"title" binding:"required,max=300"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline"`
	IsActive    *bool      `json:"is_active"`
	Documents   []string   `json:"documents" binding:"omitempty,dive,required"`
}

type PartnerInput struct {
	Name         string `json:"name" binding:"required,max=200"`
	LogoURL      string `json:"logo_url" binding:"required"`
	WebsiteURL   string `json:"website_url" binding:"omitempty,url"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

type FloorPlanInput struct {
	ProjectID    uuid.UUID       `json:"project_id" binding:"required"`
	RoomType     string          `json:"room_type" binding:"required,max=100"`
	Area         decimal.Decimal `json:"area"`
	PricePerSqm  decimal.Decimal `json:"price_per_sqm"`
	ImageURL     string          `json:"image_url"`
	DisplayOrder int             `json:"display_order" binding:"min=0"`
}

type FloorPriceInput struct {
	ProjectID    uuid.UUID       `json:"project_id" binding:"required"`
	RoomType     string          `json:"room_type" binding:"required,max=100"`
	PricePerSqm  decimal.Decimal `json:"price_per_sqm"`
	DisplayOrder int             `json:"display_order" binding:"min=0"`
}

type DepartmentInput struct {
	Name         string `json:"name" binding:"required,max=200"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

type StaffMemberInput struct {
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	FullName     string    `json:"full_name" binding:"required,max=200"`
	Position     string    `json:"position" binding:"required,max=200"`
	PhotoURL     string    `json:"photo_url"`
	DisplayOrder int       `json:"display_order" binding:"min=0"`
}

type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

type StatusUpdateRequest struct {
	Status ApplicationStatus `json:"status" binding:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Message string `json:"message" binding:"required,max=5000"`
}

type VacancyApplicationRequest struct {
	FullName    string `form:"full_name" json:"full_name" binding:"required,max=200"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Phone       string `form:"phone" json:"phone" binding:"required,max=50"`
	CoverLetter string `form:"cover_letter" json:"cover_letter" binding:"max=5000"`
}

type TenderApplicationRequest struct {
	TenderID    string `form:"tender_id" json:"tender_id" binding:"omitempty,uuid"`
	CompanyName string `form:"company_name" json:"company_name" binding:"required,max=300"`
	ContactName string `form:"contact_name" json:"contact_name" binding:"required,max=200"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Phone       string `form:"phone" json:"phone" binding:"required,max=50"`
	Message     string `form:"message" json:"message" binding:"max=5000"`
}

type CommercialOfferRequest struct {
	CompanyName string `form:"company_name" json:"company_name" binding:"required,max=300"`
	ContactName string `form:"contact_name" json:"contact_name" binding:"required,max=200"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Phone       string `form:"phone" json:"phone" binding:"required,max=50"`
	Message     string `form:"message" json:"message" binding:"required,max=5000"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}
