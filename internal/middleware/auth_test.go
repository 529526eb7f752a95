package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerup-backend/internal/auth"
	"towerup-backend/internal/models"
)

func newAuthRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/admin/ping", func(c *gin.Context) {
		claims, ok := AdminClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "admin_id": c.GetString(AdminIDKey)})
	})
	return router
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := newAuthRouter(tokens)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	router := newAuthRouter(tokens)

	admin := models.AdminUser{Email: "admin@towerup.kz", Name: "Admin"}
	admin.ID = uuid.New()
	token, _, err := tokens.Issue(admin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@towerup.kz")
	assert.Contains(t, w.Body.String(), admin.ID.String())
}

func TestAuthMiddlewareRejectsForeignToken(t *testing.T) {
	router := newAuthRouter(auth.NewTokenService("test-secret", time.Hour))

	admin := models.AdminUser{Email: "admin@towerup.kz"}
	admin.ID = uuid.New()
	token, _, err := auth.NewTokenService("other-secret", time.Hour).Issue(admin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
