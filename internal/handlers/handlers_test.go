package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"towerup-backend/docs"
	"towerup-backend/internal/audit"
	"towerup-backend/internal/auth"
	"towerup-backend/internal/chat"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/services"
	"towerup-backend/internal/storage/storagetest"
	"towerup-backend/internal/store"
	"towerup-backend/internal/store/storetest"
	"towerup-backend/internal/telegram"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type fakeGenerator struct {
	configured bool
	reply      string
	err        error
}

func (g *fakeGenerator) Configured() bool { return g.configured }

func (g *fakeGenerator) Generate(context.Context, string, []chat.Message) (string, error) {
	return g.reply, g.err
}

type testEnv struct {
	router   *gin.Engine
	repos    *store.Repositories
	objects  *storagetest.Memory
	notifier *services.Notifier
	gen      *fakeGenerator
	token    string
	telegram *httptest.Server
	tgStatus int
}

type envOptions struct {
	submitPerMinute int
	tgToken         string
}

func newEnv(t *testing.T, opts ...envOptions) *testEnv {
	t.Helper()
	opt := envOptions{tgToken: "bot-token"}
	if len(opts) > 0 {
		opt = opts[0]
	}

	log := zap.NewNop()
	repos, _ := storetest.NewRepositories(t)
	env := &testEnv{repos: repos, objects: storagetest.NewMemory(), tgStatus: http.StatusOK}

	env.telegram = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if env.tgStatus != http.StatusOK {
			w.WriteHeader(env.tgStatus)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	t.Cleanup(env.telegram.Close)

	authService := auth.NewService(repos.Admins, auth.NewTokenService("test-secret", time.Hour), log)
	_, err := authService.CreateAdmin(context.Background(), "admin@towerup.kz", "Admin", "correct-horse")
	require.NoError(t, err)
	login, err := authService.Login(context.Background(), "admin@towerup.kz", "correct-horse")
	require.NoError(t, err)
	env.token = login.Token

	relay := telegram.NewRelay(telegram.NewClient(env.telegram.URL), opt.tgToken, "-100123", log)
	env.notifier = services.NewNotifier(relay, log)
	files := services.NewStorageService(env.objects, log)
	env.gen = &fakeGenerator{configured: true, reply: "Здравствуйте!"}

	deps := Dependencies{
		Repos:       repos,
		Auth:        authService,
		Audit:       audit.NewRecorder(repos.AuditLogs, log),
		Files:       files,
		Submissions: services.NewSubmissionService(repos, files, env.notifier, log),
		Chat:        chat.NewService(env.gen, chat.NewMemoryHistoryStore(), log),
		Relay:       relay,
	}
	if opt.submitPerMinute > 0 {
		deps.SubmitLimiter = middleware.NewRateLimiter(opt.submitPerMinute)
	}

	env.router = gin.New()
	RegisterRoutes(env.router, deps)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// countingRepo records every call that reaches the store.
type countingRepo[T any] struct {
	store.Repository[T]
	calls atomic.Int32
}

func (r *countingRepo[T]) List(ctx context.Context, q store.Query) ([]T, error) {
	r.calls.Add(1)
	return r.Repository.List(ctx, q)
}

func (r *countingRepo[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	r.calls.Add(1)
	return r.Repository.Get(ctx, id)
}

func (r *countingRepo[T]) Create(ctx context.Context, row *T) error {
	r.calls.Add(1)
	return r.Repository.Create(ctx, row)
}

func (r *countingRepo[T]) Update(ctx context.Context, row *T) error {
	r.calls.Add(1)
	return r.Repository.Update(ctx, row)
}

func (r *countingRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls.Add(1)
	return r.Repository.Delete(ctx, id)
}

func TestAdminCreateRejectsInvalidInputWithoutStoreCalls(t *testing.T) {
	repos, _ := storetest.NewRepositories(t)
	repo := &countingRepo[models.Partner]{Repository: repos.Partners}
	r := gin.New()
	NewPartnerResource(repo, nil).Register(r.Group(""), "/partners")

	body := bytes.NewBufferString(`{"name":"","logo_url":"https://cdn.test/logo.png"}`)
	req := httptest.NewRequest(http.MethodPost, "/partners", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "This field is required", resp.Details["name"])
	assert.Zero(t, repo.calls.Load())

	req = httptest.NewRequest(http.MethodPut, "/partners/"+uuid.NewString(), bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, repo.calls.Load())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newEnv(t)
	w := env.do(t, http.MethodGet, "/api/v1/admin/news", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/admin/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@towerup.kz", decode[models.AdminProfile](t, w).Email)
}

func TestAdminLogin(t *testing.T) {
	env := newEnv(t)
	w := env.do(t, http.MethodPost, "/api/v1/admin/login", gin.H{"email": "admin@towerup.kz", "password": "wrong-password"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/admin/login", gin.H{"email": "admin@towerup.kz", "password": "correct-horse"}, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[models.LoginResponse](t, w).Token)
}

func TestCreateThenListNews(t *testing.T) {
	env := newEnv(t)
	published := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	w := env.do(t, http.MethodPost, "/api/v1/admin/news", gin.H{
		"title":        "Старт продаж ЖК Пушкин",
		"summary":      "Открыты продажи",
		"content":      "Первый абзац.\n\nВторой абзац.\n\n\n",
		"published_at": published,
		"featured":     true,
		"images":       []string{"https://cdn.test/news/1.jpg"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.NewsView](t, w)
	assert.Equal(t, []string{"Первый абзац.", "Второй абзац."}, created.Paragraphs)

	w = env.do(t, http.MethodGet, "/api/v1/news", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.NewsView](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Старт продаж ЖК Пушкин", list[0].Title)
	assert.Equal(t, "Открыты продажи", list[0].Summary)
	assert.True(t, list[0].Featured)
	assert.Equal(t, []string{"https://cdn.test/news/1.jpg"}, list[0].Images)
	assert.True(t, published.Equal(list[0].PublishedAt))

	w = env.do(t, http.MethodGet, "/api/v1/news/"+created.ID.String(), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.NewsView](t, w).Paragraphs, 2)

	logs, err := env.repos.AuditLogs.List(context.Background(), store.Query{}.Where("action_type", ActionCreate))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin@towerup.kz", logs[0].AdminEmail)
	assert.Equal(t, created.ID.String(), logs[0].EntityID)
}

func TestNewsListNewestFirst(t *testing.T) {
	env := newEnv(t)
	for i, day := range []int{1, 3, 2} {
		w := env.do(t, http.MethodPost, "/api/v1/admin/news", gin.H{
			"title":        "news " + string(rune('a'+i)),
			"summary":      "s",
			"content":      "c",
			"published_at": time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		}, true)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	list := decode[[]models.NewsView](t, env.do(t, http.MethodGet, "/api/v1/news", nil, false))
	require.Len(t, list, 3)
	assert.Equal(t, []string{"news b", "news c", "news a"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestDepartmentWithStaffCannotBeDeleted(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	dept := &models.Department{Name: "Отдел продаж"}
	require.NoError(t, env.repos.Departments.Create(ctx, dept))
	require.NoError(t, env.repos.Staff.Create(ctx, &models.StaffMember{DepartmentID: dept.ID, FullName: "Айгерим", Position: "Менеджер"}))

	w := env.do(t, http.MethodDelete, "/api/v1/admin/departments/"+dept.ID.String(), nil, true)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, w).Message, "Reassign or remove them first")

	_, err := env.repos.Departments.Get(ctx, dept.ID)
	assert.NoError(t, err)

	empty := &models.Department{Name: "Архив"}
	require.NoError(t, env.repos.Departments.Create(ctx, empty))
	w = env.do(t, http.MethodDelete, "/api/v1/admin/departments/"+empty.ID.String(), nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = env.repos.Departments.Get(ctx, empty.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func createProject(t *testing.T, repos *store.Repositories, slug string) *models.Project {
	t.Helper()
	p := &models.Project{Slug: slug, Title: "ЖК Пушкин", Status: models.ProjectStatusBuilding, Images: []string{}}
	require.NoError(t, repos.Projects.Create(context.Background(), p))
	return p
}

func TestFloorPlanTotals(t *testing.T) {
	env := newEnv(t)
	project := createProject(t, env.repos, "zhk-pushkin")

	w := env.do(t, http.MethodPost, "/api/v1/admin/floor-plans", gin.H{
		"project_id":    project.ID,
		"room_type":     "3-комнатная",
		"area":          55,
		"price_per_sqm": 12000000,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/projects/zhk-pushkin/floor-plans", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decode[[]models.FloorPlanView](t, w)
	require.Len(t, plans, 1)
	assert.Equal(t, "660 000 000", plans[0].TotalPriceFormatted)
	assert.True(t, plans[0].TotalPrice.Equal(decimal.NewFromInt(660000000)))
}

func TestFloorPlanRejectsNonPositiveArea(t *testing.T) {
	env := newEnv(t)
	project := createProject(t, env.repos, "zhk-turan")

	w := env.do(t, http.MethodPost, "/api/v1/admin/floor-plans", gin.H{
		"project_id": project.ID, "room_type": "студия", "area": 0, "price_per_sqm": 400000,
	}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, w).Details, "area")

	count, err := env.repos.FloorPlans.Count(context.Background(), store.Query{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProjectBySlug(t *testing.T) {
	env := newEnv(t)
	createProject(t, env.repos, "zhk-pushkin")

	w := env.do(t, http.MethodGet, "/api/v1/projects/zhk-pushkin", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orange", decode[models.ProjectView](t, w).BadgeColor)

	w = env.do(t, http.MethodGet, "/api/v1/projects/ZHK-Pushkin", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "zhk-pushkin", decode[models.ProjectView](t, w).Slug)

	w = env.do(t, http.MethodGet, "/api/v1/projects/ZHK-Pushkin/timeline", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/projects/no-such-project", nil, false)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "project not found", decode[models.ErrorResponse](t, w).Error)

	w = env.do(t, http.MethodGet, "/api/v1/projects/no-such-project/floor-plans", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/projects?status=demolished", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimelineReorder(t *testing.T) {
	env := newEnv(t)
	project := createProject(t, env.repos, "zhk-pushkin")
	base := "/api/v1/admin/projects/" + project.ID.String() + "/timeline"

	var ids []uuid.UUID
	for _, title := range []string{"Котлован", "Каркас", "Фасад"} {
		w := env.do(t, http.MethodPost, base, gin.H{"title": title}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ids = append(ids, decode[models.ProjectTimelineItem](t, w).ID)
	}

	w := env.do(t, http.MethodPut, base+"/order", gin.H{"ids": []uuid.UUID{ids[2], ids[0], ids[1]}}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/projects/zhk-pushkin/timeline", nil, false)
	items := decode[[]models.ProjectTimelineItem](t, w)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Фасад", "Котлован", "Каркас"}, []string{items[0].Title, items[1].Title, items[2].Title})

	w = env.do(t, http.MethodPut, base+"/order", gin.H{"ids": []uuid.UUID{ids[0], ids[0], ids[1]}}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := createProject(t, env.repos, "zhk-turan")
	w = env.do(t, http.MethodDelete, "/api/v1/admin/projects/"+other.ID.String()+"/timeline/"+ids[0].String(), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInboxStatusWorkflow(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	msg := &models.ContactMessage{Name: "A", Email: "a@example.kz", Message: "hi", Status: models.StatusNew}
	require.NoError(t, env.repos.ContactMessages.Create(ctx, msg))
	path := "/api/v1/admin/contact-messages/" + msg.ID.String() + "/status"

	w := env.do(t, http.MethodPatch, path, gin.H{"status": "hired"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPatch, path, gin.H{"status": "completed"}, true)
	require.Equal(t, http.StatusOK, w.Code)

	// Any status may follow any other.
	w = env.do(t, http.MethodPatch, path, gin.H{"status": "new"}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/admin/contact-messages?status=new", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ContactMessage](t, w), 1)

	w = env.do(t, http.MethodGet, "/api/v1/admin/contact-messages?status=bogus", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactSubmissionAndRateLimit(t *testing.T) {
	env := newEnv(t, envOptions{submitPerMinute: 1, tgToken: "bot-token"})
	body := gin.H{"name": "Асель", "email": "asel@example.kz", "message": "Хочу консультацию"}

	w := env.do(t, http.MethodPost, "/api/v1/contact", body, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[models.SubmissionResponse](t, w)
	assert.Equal(t, "new", resp.Status)
	env.notifier.Wait()

	w = env.do(t, http.MethodPost, "/api/v1/contact", body, false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	count, err := env.repos.ContactMessages.Count(context.Background(), store.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestVacancyApplicationMultipart(t *testing.T) {
	env := newEnv(t)
	vacancy := &models.Vacancy{Title: "Инженер ПТО", IsActive: true}
	require.NoError(t, env.repos.Vacancies.Create(context.Background(), vacancy))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("full_name", "Ержан"))
	require.NoError(t, mw.WriteField("email", "erzhan@example.kz"))
	require.NoError(t, mw.WriteField("phone", "+77010000000"))
	part, err := mw.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vacancies/"+vacancy.ID.String()+"/apply", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env.notifier.Wait()

	id := uuid.MustParse(decode[models.SubmissionResponse](t, w).ID)
	app, err := env.repos.VacancyApplications.Get(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, app.Attachments, 1)
	assert.Equal(t, 1, env.objects.Len())

	// Deleting the application drops its stored files.
	_, err = env.objects.Upload(context.Background(), "news/cover.jpg", "image/jpeg", []byte("jpg"))
	require.NoError(t, err)
	w = env.do(t, http.MethodDelete, "/api/v1/admin/vacancy-applications/"+id.String(), nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, env.objects.Len())
	_, kept := env.objects.Objects["news/cover.jpg"]
	assert.True(t, kept)

	w = env.do(t, http.MethodPost, "/api/v1/vacancies/"+uuid.NewString()+"/apply",
		gin.H{"full_name": "A", "email": "a@example.kz", "phone": "1"}, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminUpload(t *testing.T) {
	env := newEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder", "partners"))
	part, err := mw.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[models.UploadResponse](t, w)
	assert.Contains(t, resp.Path, "partners/")
	assert.Equal(t, env.objects.PublicURL(resp.Path), resp.PublicURL)
}

func TestTelegramRelayEndpoint(t *testing.T) {
	env := newEnv(t)
	payload := gin.H{"message_id": "1", "name": "A", "email": "a@example.kz", "message": "hi", "chat_id": -100123}

	w := env.do(t, http.MethodPost, "/functions/send-telegram-notification", payload, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ok := decode[map[string]any](t, w)
	assert.Equal(t, true, ok["success"])
	assert.NotNil(t, ok["result"])

	env.tgStatus = http.StatusBadRequest
	w = env.do(t, http.MethodPost, "/functions/send-telegram-notification", payload, false)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "chat not found")
}

func TestTelegramRelayWithoutCredentials(t *testing.T) {
	env := newEnv(t, envOptions{tgToken: ""})
	w := env.do(t, http.MethodPost, "/functions/send-telegram-notification",
		gin.H{"name": "A", "email": "a@example.kz", "message": "hi"}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, telegram.ErrMissingCredentials.Error(), decode[map[string]string](t, w)["error"])
}

func TestChatEndpoints(t *testing.T) {
	env := newEnv(t)
	path := "/api/v1/chat/session-1"

	w := env.do(t, http.MethodPost, path+"/messages", gin.H{"message": "Сколько стоит квартира?"}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	history := decode[[]chat.Message](t, w)
	require.Len(t, history, 2)
	assert.Equal(t, chat.RoleAssistant, history[1].Role)
	assert.Equal(t, "Здравствуйте!", history[1].Content)

	w = env.do(t, http.MethodGet, path+"/history", nil, false)
	assert.Len(t, decode[[]chat.Message](t, w), 2)

	w = env.do(t, http.MethodDelete, path+"/history", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, path+"/history", nil, false)
	assert.Empty(t, decode[[]chat.Message](t, w))
}

func TestChatFallbackAndNotConfigured(t *testing.T) {
	env := newEnv(t)
	env.gen.err = errors.New("upstream 500")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/s/messages", bytes.NewBufferString(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]chat.Message](t, w)
	assert.Contains(t, history[len(history)-1].Content, "Sorry")

	env.gen.configured = false
	w = env.do(t, http.MethodPost, "/api/v1/chat/s/messages", gin.H{"message": "hello"}, false)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "chat is not configured", decode[models.ErrorResponse](t, w).Error)

	w = env.do(t, http.MethodGet, "/api/v1/chat/s/history", nil, false)
	assert.Len(t, decode[[]chat.Message](t, w), 2)
}

func TestAuditLogList(t *testing.T) {
	env := newEnv(t)
	w := env.do(t, http.MethodPost, "/api/v1/admin/partners", gin.H{"name": "Kaspi", "logo_url": "https://cdn.test/kaspi.png"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/admin/audit-logs?action_type=create", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[[]models.AuditLog](t, w)
	require.Len(t, logs, 1)
	assert.Equal(t, "partner", logs[0].Entity)
}

func TestEveryRouteIsDocumented(t *testing.T) {
	env := newEnv(t)

	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &spec))
	assert.Equal(t, "/", docs.SwaggerInfo.BasePath)

	param := regexp.MustCompile(`:(\w+)`)
	for _, route := range env.router.Routes() {
		path := param.ReplaceAllString(route.Path, "{$1}")
		ops, ok := spec.Paths[path]
		if !assert.True(t, ok, "undocumented path %s", path) {
			continue
		}
		_, ok = ops[strings.ToLower(route.Method)]
		assert.True(t, ok, "undocumented %s %s", route.Method, path)
	}
}
