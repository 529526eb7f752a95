package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/projects/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, slug := range []string{"zhk-pushkin", "zhk-turan"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+slug, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/projects/:slug", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRelayCounters(t *testing.T) {
	m := New()
	m.ObserveChat("answered")
	m.ObserveChat("fallback")
	m.ObserveChat("fallback")
	m.ObserveNotification("contact", nil)
	m.ObserveNotification("contact", errors.New("boom"))
	m.ObserveSubmission("vacancy_application")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.chatReplies.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("contact", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("contact", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("vacancy_application")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveSubmission("contact")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `towerup_submissions_total{kind="contact"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
