package models

import "github.com/google/uuid"

type ProjectStatus string

const (
	ProjectStatusDesigning ProjectStatus = "designing"
	ProjectStatusBuilding  ProjectStatus = "building"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusUpcoming  ProjectStatus = "upcoming"
	ProjectStatusActive    ProjectStatus = "active"
)

func (s ProjectStatus) Valid() bool {
	return s.BadgeColor() != "gray"
}

// BadgeColor is the UI accent used for the status badge on project cards.
func (s ProjectStatus) BadgeColor() string {
	switch s {
	case ProjectStatusDesigning:
		return "blue"
	case ProjectStatusBuilding:
		return "orange"
	case ProjectStatusCompleted:
		return "green"
	case ProjectStatusUpcoming:
		return "purple"
	case ProjectStatusActive:
		return "teal"
	default:
		return "gray"
	}
}

type Project struct {
	Base
	Slug         string        `json:"slug" gorm:"uniqueIndex;not null"`
	Title        string        `json:"title" gorm:"not null"`
	Subtitle     string        `json:"subtitle"`
	Description  string        `json:"description"`
	Status       ProjectStatus `json:"status" gorm:"not null"`
	Location     string        `json:"location"`
	Address      string        `json:"address"`
	Images       []string      `json:"images" gorm:"serializer:json"`
	CoverImage   string        `json:"cover_image"`
	IsFuture     bool          `json:"is_future"`
	DisplayOrder int           `json:"display_order"`
}

func (Project) TableName() string { return "projects" }

type ProjectTimelineItem struct {
	Base
	ProjectID    uuid.UUID `json:"project_id" gorm:"type:uuid;index;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	DateLabel    string    `json:"date_label"`
	IsDone       bool      `json:"is_done"`
	DisplayOrder int       `json:"display_order"`
}

func (ProjectTimelineItem) TableName() string { return "project_timeline" }

func (t *ProjectTimelineItem) SetDisplayOrder(order int) { t.DisplayOrder = order }
func (t *ProjectTimelineItem) OwnerID() uuid.UUID        { return t.ProjectID }

type ProjectCharacteristic struct {
	Base
	ProjectID    uuid.UUID `json:"project_id" gorm:"type:uuid;index;not null"`
	Label        string    `json:"label" gorm:"not null"`
	Value        string    `json:"value" gorm:"not null"`
	DisplayOrder int       `json:"display_order"`
}

func (ProjectCharacteristic) TableName() string { return "project_characteristics" }

func (p *ProjectCharacteristic) SetDisplayOrder(order int) { p.DisplayOrder = order }
func (p *ProjectCharacteristic) OwnerID() uuid.UUID        { return p.ProjectID }
