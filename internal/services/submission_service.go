package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
	"towerup-backend/internal/telegram"
)

// Submission kinds, also used as storage folders and metric labels.
const (
	KindContact            = "contact"
	KindVacancyApplication = "vacancy_application"
	KindTenderApplication  = "tender_application"
	KindCommercialOffer    = "commercial_offer"
)

// SubmissionService stores public form submissions with status "new" and then
// notifies the sales chat asynchronously.
type SubmissionService struct {
	repos    *store.Repositories
	files    *StorageService
	notifier *Notifier
	log      *zap.Logger
	onStored func(kind string)
}

func NewSubmissionService(repos *store.Repositories, files *StorageService, notifier *Notifier, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		repos:    repos,
		files:    files,
		notifier: notifier,
		log:      log.Named("submissions"),
	}
}

func (s *SubmissionService) OnStored(fn func(kind string)) {
	s.onStored = fn
}

func (s *SubmissionService) stored(kind string, id uuid.UUID, p telegram.Payload) {
	s.log.Info("submission stored", zap.String("kind", kind), zap.String("id", id.String()))
	if s.onStored != nil {
		s.onStored(kind)
	}
	p.MessageID = id.String()
	s.notifier.Notify(p)
}

func (s *SubmissionService) SubmitContact(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
		Status:  models.StatusNew,
	}
	if err := s.repos.ContactMessages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.stored(KindContact, msg.ID, telegram.Payload{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
		Type:    telegram.TypeContact,
		AdditionalData: map[string]any{
			"Телефон": msg.Phone,
		},
	})
	return msg, nil
}

// ApplyForVacancy returns store.ErrNotFound when the vacancy does not exist or
// is no longer active.
func (s *SubmissionService) ApplyForVacancy(ctx context.Context, vacancyID uuid.UUID, req models.VacancyApplicationRequest, files []Attachment) (*models.VacancyApplication, error) {
	vacancy, err := s.repos.Vacancies.Get(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if !vacancy.IsActive {
		return nil, store.ErrNotFound
	}

	app := &models.VacancyApplication{
		VacancyID:   vacancy.ID,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		CoverLetter: strings.TrimSpace(req.CoverLetter),
		Status:      models.StatusNew,
	}
	app.ID = uuid.New()

	if app.Attachments, err = s.files.UploadAttachments(ctx, KindVacancyApplication, app.ID, files); err != nil {
		return nil, err
	}
	if err := s.repos.VacancyApplications.Create(ctx, app); err != nil {
		s.discard(ctx, app.Attachments)
		return nil, err
	}

	s.stored(KindVacancyApplication, app.ID, telegram.Payload{
		Name:    app.FullName,
		Email:   app.Email,
		Message: app.CoverLetter,
		Type:    telegram.TypeVacancyApplication,
		AdditionalData: map[string]any{
			"Вакансия": vacancy.Title,
			"Телефон":  app.Phone,
			"Файлы":    len(app.Attachments),
		},
	})
	return app, nil
}

// SubmitTender accepts an application for a specific active tender or, with
// an empty tender id, a general partnership request.
func (s *SubmissionService) SubmitTender(ctx context.Context, req models.TenderApplicationRequest, files []Attachment) (*models.TenderApplication, error) {
	app := &models.TenderApplication{
		CompanyName: strings.TrimSpace(req.CompanyName),
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Message:     strings.TrimSpace(req.Message),
		Status:      models.StatusNew,
	}
	app.ID = uuid.New()

	extra := map[string]any{
		"Контакт": app.ContactName,
		"Телефон": app.Phone,
	}
	if req.TenderID != "" {
		id, err := uuid.Parse(req.TenderID)
		if err != nil {
			return nil, fmt.Errorf("invalid tender id: %w", err)
		}
		tender, err := s.repos.Tenders.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !tender.IsActive {
			return nil, store.ErrNotFound
		}
		app.TenderID = &tender.ID
		extra["Тендер"] = tender.Title
	}

	var err error
	if app.Attachments, err = s.files.UploadAttachments(ctx, KindTenderApplication, app.ID, files); err != nil {
		return nil, err
	}
	if err := s.repos.TenderApplications.Create(ctx, app); err != nil {
		s.discard(ctx, app.Attachments)
		return nil, err
	}

	extra["Файлы"] = len(app.Attachments)
	s.stored(KindTenderApplication, app.ID, telegram.Payload{
		Name:           app.CompanyName,
		Email:          app.Email,
		Message:        app.Message,
		Type:           telegram.TypeTenderSubmission,
		AdditionalData: extra,
	})
	return app, nil
}

func (s *SubmissionService) SubmitOffer(ctx context.Context, req models.CommercialOfferRequest, files []Attachment) (*models.CommercialOffer, error) {
	offer := &models.CommercialOffer{
		CompanyName: strings.TrimSpace(req.CompanyName),
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Message:     strings.TrimSpace(req.Message),
		Status:      models.StatusNew,
	}
	offer.ID = uuid.New()

	var err error
	if offer.Attachments, err = s.files.UploadAttachments(ctx, KindCommercialOffer, offer.ID, files); err != nil {
		return nil, err
	}
	if err := s.repos.CommercialOffers.Create(ctx, offer); err != nil {
		s.discard(ctx, offer.Attachments)
		return nil, err
	}

	s.stored(KindCommercialOffer, offer.ID, telegram.Payload{
		Name:    offer.CompanyName,
		Email:   offer.Email,
		Message: offer.Message,
		Type:    telegram.TypeCommercialOffer,
		AdditionalData: map[string]any{
			"Контакт": offer.ContactName,
			"Телефон": offer.Phone,
			"Файлы":   len(offer.Attachments),
		},
	})
	return offer, nil
}

// discard removes attachments of a submission that could not be stored.
// Attachments are recorded as public URLs, so the key is the part after the
// "applications/" folder.
func (s *SubmissionService) discard(ctx context.Context, urls []string) {
	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		if i := strings.Index(u, "applications/"); i >= 0 {
			keys = append(keys, u[i:])
		}
	}
	s.files.Remove(ctx, keys)
}
