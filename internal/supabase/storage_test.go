package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerup-backend/internal/config"
)

func TestNewStorageClientRequiresCredentials(t *testing.T) {
	_, err := NewStorageClient("", "key", "bucket")
	assert.Error(t, err)

	_, err = NewStorageClient("https://x.supabase.co", "key", "")
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	s, err := NewStorageClient("https://x.supabase.co/", "key", "towerup-media")
	require.NoError(t, err)
	assert.Equal(t,
		"https://x.supabase.co/storage/v1/object/public/towerup-media/news/a.jpg",
		s.PublicURL("/news/a.jpg"))
}

func TestUploadPostsToBucket(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"Key": "towerup-media/news/a.jpg"})
	}))
	defer srv.Close()

	s, err := NewStorageClient(srv.URL, "service-key", "towerup-media")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "news/a.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/towerup-media/news/a.jpg", gotPath)
	assert.True(t, strings.HasSuffix(gotAuth, "service-key"), gotAuth)
	assert.Equal(t, "jpeg", gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/towerup-media/news/a.jpg", url)
}

func TestUploadHonoursCancelledContext(t *testing.T) {
	s, err := NewStorageClient("http://127.0.0.1:1", "key", "bucket")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Upload(ctx, "a.txt", "text/plain", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientRequiresServiceKey(t *testing.T) {
	_, err := NewClient(&config.Config{SupabaseURL: "https://x.supabase.co"})
	assert.Error(t, err)
}
