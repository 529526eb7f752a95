package handlers

import (
	"github.com/gin-gonic/gin"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/auth"
	"towerup-backend/internal/cache"
	"towerup-backend/internal/chat"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/services"
	"towerup-backend/internal/store"
	"towerup-backend/internal/telegram"
)

// Dependencies are the services the HTTP API is built from. Cache and the
// rate limiters may be nil.
type Dependencies struct {
	Repos         *store.Repositories
	Cache         cache.QueryCache
	Auth          *auth.Service
	Audit         *audit.Recorder
	Files         *services.StorageService
	Submissions   *services.SubmissionService
	Chat          *chat.Service
	Relay         *telegram.Relay
	SubmitLimiter *middleware.RateLimiter
	ChatLimiter   *middleware.RateLimiter

	// OnNotification observes relayed notifications. Optional.
	OnNotification func(telegram.MessageType, error)
}

func limited(rl *middleware.RateLimiter) []gin.HandlerFunc {
	if rl == nil {
		return nil
	}
	return []gin.HandlerFunc{rl.Middleware()}
}

// RegisterRoutes mounts the public API, the admin API and the notification
// function on r.
func RegisterRoutes(r *gin.Engine, d Dependencies) {
	r.GET("/health", NewHealthHandler(d.Repos.Projects).Check)

	notifications := NewNotificationHandler(d.Relay)
	if d.OnNotification != nil {
		notifications.OnResult(d.OnNotification)
	}
	r.POST("/functions/send-telegram-notification", append(limited(d.SubmitLimiter), notifications.SendTelegram)...)

	api := r.Group("/api/v1")

	projects := NewProjectsHandler(d.Repos)
	api.GET("/projects", projects.ListProjects)
	api.GET("/projects/:slug", projects.GetProject)
	api.GET("/projects/:slug/floor-plans", projects.GetFloorPlans)
	api.GET("/projects/:slug/prices", projects.GetPrices)
	api.GET("/projects/:slug/timeline", projects.GetTimeline)
	api.GET("/projects/:slug/characteristics", projects.GetCharacteristics)

	content := NewContentHandler(d.Repos)
	api.GET("/news", content.ListNews)
	api.GET("/news/:id", content.GetNews)
	api.GET("/vacancies", content.ListVacancies)
	api.GET("/vacancies/:id", content.GetVacancy)
	api.GET("/tenders", content.ListTenders)
	api.GET("/partners", content.ListPartners)
	api.GET("/team", content.GetTeam)

	submissions := NewSubmissionsHandler(d.Submissions)
	submit := api.Group("", limited(d.SubmitLimiter)...)
	submit.POST("/contact", submissions.Contact)
	submit.POST("/vacancies/:id/apply", submissions.ApplyForVacancy)
	submit.POST("/tenders/apply", submissions.ApplyForTender)
	submit.POST("/commercial-offers", submissions.CommercialOffer)

	chatHandler := NewChatHandler(d.Chat)
	api.GET("/chat/:session_id/history", chatHandler.GetHistory)
	api.DELETE("/chat/:session_id/history", chatHandler.ClearHistory)
	api.POST("/chat/:session_id/messages", append(limited(d.ChatLimiter), chatHandler.SendMessage)...)

	authHandler := NewAuthHandler(d.Auth, d.Audit)
	api.POST("/admin/login", append(limited(d.SubmitLimiter), authHandler.Login)...)

	admin := api.Group("/admin", middleware.AuthMiddleware(d.Auth.Tokens()))
	admin.GET("/me", authHandler.Me)
	registerAdmin(admin, d)
}

func registerAdmin(g *gin.RouterGroup, d Dependencies) {
	repos, rec := d.Repos, d.Audit

	NewProjectResource(repos.Projects, d.Cache, rec).Register(g, "/projects")
	NewTimelineHandler(repos.Projects, repos.Timeline, rec).Register(g, "timeline")
	NewCharacteristicHandler(repos.Projects, repos.Characteristics, rec).Register(g, "characteristics")

	NewNewsResource(repos.News, rec).Register(g, "/news")
	NewVacancyResource(repos.Vacancies, rec).Register(g, "/vacancies")
	NewTenderResource(repos.Tenders, rec).Register(g, "/tenders")
	NewPartnerResource(repos.Partners, rec).Register(g, "/partners")
	NewFloorPlanResource(repos.FloorPlans, rec).Register(g, "/floor-plans")
	NewFloorPriceResource(repos.FloorPrices, rec).Register(g, "/floor-prices")
	NewDepartmentResource(repos.Departments, repos.Staff, rec).Register(g, "/departments")
	NewStaffResource(repos.Staff, rec).Register(g, "/staff")

	(&Inbox[models.VacancyApplication, *models.VacancyApplication]{
		Entity: "vacancy application", Repo: repos.VacancyApplications, Statuses: models.VacancyStatuses, Audit: rec,
		AfterDelete: removeAttachments(d.Files, services.KindVacancyApplication),
	}).Register(g, "/vacancy-applications")
	(&Inbox[models.TenderApplication, *models.TenderApplication]{
		Entity: "tender application", Repo: repos.TenderApplications, Statuses: models.InboxStatuses, Audit: rec,
		AfterDelete: removeAttachments(d.Files, services.KindTenderApplication),
	}).Register(g, "/tender-applications")
	(&Inbox[models.CommercialOffer, *models.CommercialOffer]{
		Entity: "commercial offer", Repo: repos.CommercialOffers, Statuses: models.InboxStatuses, Audit: rec,
		AfterDelete: removeAttachments(d.Files, services.KindCommercialOffer),
	}).Register(g, "/commercial-offers")
	(&Inbox[models.ContactMessage, *models.ContactMessage]{
		Entity: "contact message", Repo: repos.ContactMessages, Statuses: models.InboxStatuses, Audit: rec,
	}).Register(g, "/contact-messages")

	g.GET("/audit-logs", NewAuditHandler(rec).List)
	g.POST("/uploads", NewUploadHandler(d.Files, rec).Upload)
}
