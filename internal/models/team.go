package models

import "github.com/google/uuid"

type Department struct {
	Base
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

func (Department) TableName() string { return "departments" }

type StaffMember struct {
	Base
	DepartmentID uuid.UUID `json:"department_id" gorm:"type:uuid;index;not null"`
	FullName     string    `json:"full_name" gorm:"not null"`
	Position     string    `json:"position"`
	PhotoURL     string    `json:"photo_url"`
	DisplayOrder int       `json:"display_order"`
}

func (StaffMember) TableName() string { return "staff_members" }
