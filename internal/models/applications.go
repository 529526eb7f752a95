package models

import "github.com/google/uuid"

type ApplicationStatus string

const (
	StatusNew        ApplicationStatus = "new"
	StatusInProgress ApplicationStatus = "in_progress"
	StatusContacted  ApplicationStatus = "contacted"
	StatusRejected   ApplicationStatus = "rejected"
	StatusCompleted  ApplicationStatus = "completed"
	StatusHired      ApplicationStatus = "hired"
)

// VacancyStatuses are the workflow states of a job application.
var VacancyStatuses = []ApplicationStatus{StatusNew, StatusInProgress, StatusContacted, StatusRejected, StatusHired}

// InboxStatuses are the workflow states of contact messages, tender
// applications and commercial offers.
var InboxStatuses = []ApplicationStatus{StatusNew, StatusInProgress, StatusContacted, StatusRejected, StatusCompleted}

type VacancyApplication struct {
	Base
	VacancyID   uuid.UUID         `json:"vacancy_id" gorm:"type:uuid;index;not null"`
	FullName    string            `json:"full_name" gorm:"not null"`
	Email       string            `json:"email" gorm:"not null"`
	Phone       string            `json:"phone"`
	CoverLetter string            `json:"cover_letter"`
	Attachments []string          `json:"attachments" gorm:"serializer:json"`
	Status      ApplicationStatus `json:"status" gorm:"index;not null"`
}

func (VacancyApplication) TableName() string { return "vacancy_applications" }

func (a *VacancyApplication) SetStatus(s ApplicationStatus) { a.Status = s }

type TenderApplication struct {
	Base
	TenderID    *uuid.UUID        `json:"tender_id,omitempty" gorm:"type:uuid;index"`
	CompanyName string            `json:"company_name" gorm:"not null"`
	ContactName string            `json:"contact_name"`
	Email       string            `json:"email" gorm:"not null"`
	Phone       string            `json:"phone"`
	Message     string            `json:"message"`
	Attachments []string          `json:"attachments" gorm:"serializer:json"`
	Status      ApplicationStatus `json:"status" gorm:"index;not null"`
}

func (TenderApplication) TableName() string { return "tender_applications" }

func (a *TenderApplication) SetStatus(s ApplicationStatus) { a.Status = s }

type CommercialOffer struct {
	Base
	CompanyName string            `json:"company_name" gorm:"not null"`
	ContactName string            `json:"contact_name"`
	Email       string            `json:"email" gorm:"not null"`
	Phone       string            `json:"phone"`
	Message     string            `json:"message"`
	Attachments []string          `json:"attachments" gorm:"serializer:json"`
	Status      ApplicationStatus `json:"status" gorm:"index;not null"`
}

func (CommercialOffer) TableName() string { return "commercial_offers" }

func (o *CommercialOffer) SetStatus(s ApplicationStatus) { o.Status = s }

type ContactMessage struct {
	Base
	Name    string            `json:"name" gorm:"not null"`
	Email   string            `json:"email" gorm:"not null"`
	Phone   string            `json:"phone"`
	Message string            `json:"message" gorm:"not null"`
	Status  ApplicationStatus `json:"status" gorm:"index;not null"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

func (m *ContactMessage) SetStatus(s ApplicationStatus) { m.Status = s }
