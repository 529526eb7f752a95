package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FloorPlan struct {
	Base
	ProjectID    uuid.UUID       `json:"project_id" gorm:"type:uuid;index;not null"`
	RoomType     string          `json:"room_type" gorm:"not null"`
	Area         decimal.Decimal `json:"area" gorm:"type:numeric(10,2);not null"`
	PricePerSqm  decimal.Decimal `json:"price_per_sqm" gorm:"type:numeric(14,2);not null"`
	ImageURL     string          `json:"image_url"`
	DisplayOrder int             `json:"display_order"`
}

func (FloorPlan) TableName() string { return "floor_plans" }

type FloorPrice struct {
	Base
	ProjectID    uuid.UUID       `json:"project_id" gorm:"type:uuid;index;not null"`
	RoomType     string          `json:"room_type" gorm:"not null"`
	PricePerSqm  decimal.Decimal `json:"price_per_sqm" gorm:"type:numeric(14,2);not null"`
	DisplayOrder int             `json:"display_order"`
}

func (FloorPrice) TableName() string { return "floor_prices" }
