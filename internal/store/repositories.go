package store

import (
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"towerup-backend/internal/cache"
	"towerup-backend/internal/models"
)

// Repositories groups one repository per table.
type Repositories struct {
	Projects            Repository[models.Project]
	Timeline            Repository[models.ProjectTimelineItem]
	Characteristics     Repository[models.ProjectCharacteristic]
	News                Repository[models.News]
	Vacancies           Repository[models.Vacancy]
	VacancyApplications Repository[models.VacancyApplication]
	Tenders             Repository[models.Tender]
	TenderApplications  Repository[models.TenderApplication]
	CommercialOffers    Repository[models.CommercialOffer]
	ContactMessages     Repository[models.ContactMessage]
	Partners            Repository[models.Partner]
	FloorPlans          Repository[models.FloorPlan]
	FloorPrices         Repository[models.FloorPrice]
	Departments         Repository[models.Department]
	Staff               Repository[models.StaffMember]
	Admins              Repository[models.AdminUser]
	AuditLogs           Repository[models.AuditLog]
}

func withCache[T any](r Repository[T], qc cache.QueryCache, log *zap.Logger) Repository[T] {
	if qc == nil {
		return r
	}
	return NewCachedRepository(r, qc, log)
}

// NewGormRepositories builds repositories over a gorm connection. qc may be
// nil to disable caching. Admin accounts and audit logs are never cached.
func NewGormRepositories(db *gorm.DB, qc cache.QueryCache, log *zap.Logger) *Repositories {
	return &Repositories{
		Projects:            withCache[models.Project](NewGormRepository[models.Project](db), qc, log),
		Timeline:            withCache[models.ProjectTimelineItem](NewGormRepository[models.ProjectTimelineItem](db), qc, log),
		Characteristics:     withCache[models.ProjectCharacteristic](NewGormRepository[models.ProjectCharacteristic](db), qc, log),
		News:                withCache[models.News](NewGormRepository[models.News](db), qc, log),
		Vacancies:           withCache[models.Vacancy](NewGormRepository[models.Vacancy](db), qc, log),
		VacancyApplications: NewGormRepository[models.VacancyApplication](db),
		Tenders:             withCache[models.Tender](NewGormRepository[models.Tender](db), qc, log),
		TenderApplications:  NewGormRepository[models.TenderApplication](db),
		CommercialOffers:    NewGormRepository[models.CommercialOffer](db),
		ContactMessages:     NewGormRepository[models.ContactMessage](db),
		Partners:            withCache[models.Partner](NewGormRepository[models.Partner](db), qc, log),
		FloorPlans:          withCache[models.FloorPlan](NewGormRepository[models.FloorPlan](db), qc, log),
		FloorPrices:         withCache[models.FloorPrice](NewGormRepository[models.FloorPrice](db), qc, log),
		Departments:         withCache[models.Department](NewGormRepository[models.Department](db), qc, log),
		Staff:               withCache[models.StaffMember](NewGormRepository[models.StaffMember](db), qc, log),
		Admins:              NewGormRepository[models.AdminUser](db),
		AuditLogs:           NewGormRepository[models.AuditLog](db),
	}
}

// NewRestRepositories builds repositories over the Supabase REST API.
func NewRestRepositories(client *supabase.Client, qc cache.QueryCache, log *zap.Logger) *Repositories {
	return &Repositories{
		Projects:            withCache[models.Project](NewRestRepository[models.Project](client), qc, log),
		Timeline:            withCache[models.ProjectTimelineItem](NewRestRepository[models.ProjectTimelineItem](client), qc, log),
		Characteristics:     withCache[models.ProjectCharacteristic](NewRestRepository[models.ProjectCharacteristic](client), qc, log),
		News:                withCache[models.News](NewRestRepository[models.News](client), qc, log),
		Vacancies:           withCache[models.Vacancy](NewRestRepository[models.Vacancy](client), qc, log),
		VacancyApplications: NewRestRepository[models.VacancyApplication](client),
		Tenders:             withCache[models.Tender](NewRestRepository[models.Tender](client), qc, log),
		TenderApplications:  NewRestRepository[models.TenderApplication](client),
		CommercialOffers:    NewRestRepository[models.CommercialOffer](client),
		ContactMessages:     NewRestRepository[models.ContactMessage](client),
		Partners:            withCache[models.Partner](NewRestRepository[models.Partner](client), qc, log),
		FloorPlans:          withCache[models.FloorPlan](NewRestRepository[models.FloorPlan](client), qc, log),
		FloorPrices:         withCache[models.FloorPrice](NewRestRepository[models.FloorPrice](client), qc, log),
		Departments:         withCache[models.Department](NewRestRepository[models.Department](client), qc, log),
		Staff:               withCache[models.StaffMember](NewRestRepository[models.StaffMember](client), qc, log),
		Admins:              NewRestRepository[models.AdminUser](client),
		AuditLogs:           NewRestRepository[models.AuditLog](client),
	}
}
