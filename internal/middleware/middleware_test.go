package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerup-backend/internal/models"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRateLimiter(1).Middleware())
	router.POST("/contact", func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func postFrom(router *gin.Engine, peer, forwardedFor string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = peer
	req.Header.Set("X-Forwarded-For", forwardedFor)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := NewEngine(nil)
	require.NoError(t, err)
	router.Use(NewRateLimiter(1).Middleware())
	router.POST("/contact", func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := []int{
		postFrom(router, "192.0.2.10:5555", "203.0.113.1"),
		postFrom(router, "192.0.2.10:5555", "203.0.113.2"),
		postFrom(router, "192.0.2.10:5555", "203.0.113.3"),
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterUsesForwardedForFromTrustedProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := NewEngine([]string{"192.0.2.0/24"})
	require.NoError(t, err)
	router.Use(NewRateLimiter(1).Middleware())
	router.POST("/contact", func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusCreated, postFrom(router, "192.0.2.10:5555", "203.0.113.1"))
	assert.Equal(t, http.StatusCreated, postFrom(router, "192.0.2.10:5555", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "192.0.2.11:6000", "203.0.113.2"))
}

func TestNewEngineRejectsBadProxy(t *testing.T) {
	_, err := NewEngine([]string{"not-an-ip"})
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"https://towerup.kz"}))
	router.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "https://towerup.kz")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://towerup.kz", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "https://evil.example")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestValidationErrorUsesJSONFieldNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/contact", func(c *gin.Context) {
		var req models.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	body, _ := json.Marshal(map[string]string{"name": "", "email": "not-an-email", "message": "hi"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Equal(t, "This field is required", resp.Details["name"])
	assert.Equal(t, "Invalid email format", resp.Details["email"])
}
