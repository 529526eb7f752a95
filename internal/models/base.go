package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and timestamps every table shares.
type Base struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) GetID() uuid.UUID {
	return b.ID
}

// Prepare fills id and timestamps for writes that bypass gorm hooks (PostgREST).
func (b *Base) Prepare(now time.Time) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every table model, in dependency order.
func All() []any {
	return []any{
		&Project{}, &ProjectTimelineItem{}, &ProjectCharacteristic{},
		&News{}, &Vacancy{}, &VacancyApplication{},
		&Tender{}, &TenderApplication{}, &CommercialOffer{}, &ContactMessage{},
		&Partner{}, &FloorPlan{}, &FloorPrice{},
		&Department{}, &StaffMember{},
		&AdminUser{}, &AuditLog{},
	}
}
