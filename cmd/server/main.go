// @title           TowerUp Backend API
// @version         1.0.0
// @description     Backend API for the TowerUp marketing site: public project showcases, news, vacancies, tenders and partners, visitor submissions, the chat assistant, Telegram notifications and the admin back office.

// @contact.name   API Support
// @contact.email  support@towerup.kz

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"towerup-backend/docs"
	"towerup-backend/internal/app"
	"towerup-backend/internal/audit"
	"towerup-backend/internal/auth"
	"towerup-backend/internal/chat"
	"towerup-backend/internal/config"
	"towerup-backend/internal/handlers"
	"towerup-backend/internal/logger"
	"towerup-backend/internal/metrics"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/seed"
	"towerup-backend/internal/services"
	"towerup-backend/internal/telegram"
)

const chatHistoryTTL = 7 * 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx := context.Background()

	if cfg.DatabaseURL != "" {
		applied, err := app.Migrate(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Info("Migrations completed", zap.Strings("applied", applied))
	} else {
		log.Warn("DATABASE_URL not set, migrations skipped; schema must already exist behind PostgREST")
	}

	backends, err := app.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open backends: %w", err)
	}
	defer backends.Close()
	repos := backends.Repos

	objects, err := app.OpenObjectStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	authService := auth.NewService(repos.Admins, auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL), log)
	if _, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	if cfg.SeedOnStart {
		result, err := seed.NewSeeder(repos, log).Run(ctx)
		if err != nil {
			log.Error("Seeding failed", zap.Error(err))
		} else {
			log.Info("Seeding finished", zap.Any("inserted", result))
		}
	}

	m := metrics.New()

	var history chat.HistoryStore = chat.NewMemoryHistoryStore()
	if backends.Redis != nil {
		history = chat.NewRedisHistoryStore(backends.Redis, chatHistoryTTL)
	}
	chatService := chat.NewService(chat.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel), history, log)
	chatService.OnOutcome(func(o chat.Outcome) { m.ObserveChat(string(o)) })

	observeNotification := func(t telegram.MessageType, err error) { m.ObserveNotification(string(t), err) }
	relay := telegram.NewRelay(telegram.NewClient(cfg.TelegramAPIURL), cfg.TelegramBotToken, cfg.TelegramChatID, log)
	notifier := services.NewNotifier(relay, log)
	notifier.OnResult(observeNotification)
	defer notifier.Wait()

	files := services.NewStorageService(objects, log)
	submissions := services.NewSubmissionService(repos, files, notifier, log)
	submissions.OnStored(m.ObserveSubmission)

	middleware.SetupValidator()

	router, err := middleware.NewEngine(cfg.TrustedProxies)
	if err != nil {
		return err
	}
	router.Use(logger.RequestID())
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(m.Middleware())

	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.RegisterRoutes(router, handlers.Dependencies{
		Repos:          repos,
		Cache:          backends.Cache,
		Auth:           authService,
		Audit:          audit.NewRecorder(repos.AuditLogs, log),
		Files:          files,
		Submissions:    submissions,
		Chat:           chatService,
		Relay:          relay,
		SubmitLimiter:  middleware.NewRateLimiter(cfg.RateLimitPerMinute),
		ChatLimiter:    middleware.NewRateLimiter(cfg.RateLimitPerMinute),
		OnNotification: observeNotification,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Chat replies can take a while upstream.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
