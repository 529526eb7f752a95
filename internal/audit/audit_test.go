package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/store/storetest"
)

const chromeOnWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want audit.Device
	}{
		{chromeOnWindows, audit.Device{Type: "desktop", Browser: "Chrome", OS: "Windows"}},
		{
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			audit.Device{Type: "mobile", Browser: "Safari", OS: "iOS"},
		},
		{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			audit.Device{Type: "desktop", Browser: "Edge", OS: "Windows"},
		},
		{
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			audit.Device{Type: "mobile", Browser: "Chrome", OS: "Android"},
		},
		{
			"Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			audit.Device{Type: "tablet", Browser: "Chrome", OS: "Android"},
		},
		{
			"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			audit.Device{Type: "tablet", Browser: "Safari", OS: "iOS"},
		},
		{
			"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			audit.Device{Type: "desktop", Browser: "Firefox", OS: "Linux"},
		},
		{"", audit.Device{Type: "unknown", Browser: "unknown", OS: "unknown"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, audit.ParseUserAgent(tt.ua), tt.ua)
	}
}

func TestRecorderRecordAndList(t *testing.T) {
	ctx := context.Background()
	repos, _ := storetest.NewRepositories(t)
	rec := audit.NewRecorder(repos.AuditLogs, zap.NewNop())

	rec.Record(ctx, audit.Entry{
		Action:     "create_news",
		AdminEmail: "admin@towerup.kz",
		Entity:     "news",
		EntityID:   "42",
		UserAgent:  chromeOnWindows,
		Details:    map[string]any{"title": "Старт продаж"},
	})
	rec.Record(ctx, audit.Entry{Action: "delete_partner", AdminEmail: "editor@towerup.kz", Entity: "partners"})

	all, err := rec.List(ctx, "", "", 100)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := rec.List(ctx, "create_news", "", 100)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Chrome", filtered[0].Browser)
	assert.Equal(t, "Windows", filtered[0].OS)
	assert.Equal(t, "Старт продаж", filtered[0].Details["title"])

	byAdmin, err := rec.List(ctx, "", "editor@towerup.kz", 100)
	require.NoError(t, err)
	require.Len(t, byAdmin, 1)
	assert.Equal(t, "delete_partner", byAdmin[0].ActionType)
}
