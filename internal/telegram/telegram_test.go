package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormatMessageTemplates(t *testing.T) {
	tests := []struct {
		msgType MessageType
		header  string
		label   string
	}{
		{TypeContact, "Новое сообщение с сайта", "Имя"},
		{"", "Новое сообщение с сайта", "Имя"},
		{"unknown", "Новое сообщение с сайта", "Имя"},
		{TypeVacancyApplication, "Новый отклик на вакансию", "Кандидат"},
		{TypeTenderSubmission, "Новая заявка на тендер", "Компания"},
		{TypeCommercialOffer, "Новое коммерческое предложение", "Компания"},
	}

	for _, tt := range tests {
		t.Run(string(tt.msgType), func(t *testing.T) {
			text := FormatMessage(Payload{Type: tt.msgType, Name: "Асель", Email: "asel@example.kz", Message: "Здравствуйте"})
			assert.Contains(t, text, tt.header)
			assert.Contains(t, text, "<b>"+tt.label+":</b> Асель")
			assert.Contains(t, text, "asel@example.kz")
			assert.Contains(t, text, "Здравствуйте")
		})
	}
}

func TestFormatMessageEscapesUserInput(t *testing.T) {
	text := FormatMessage(Payload{
		Name:    "<script>alert(1)</script>",
		Email:   "a&b@example.kz",
		Message: "<b>bold</b>",
		AdditionalData: map[string]any{
			"<key>": "<value>",
		},
	})

	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "&lt;script&gt;")
	assert.Contains(t, text, "a&amp;b@example.kz")
	assert.Contains(t, text, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, text, "<b>&lt;key&gt;:</b> &lt;value&gt;")
}

func TestFormatMessageAdditionalDataSorted(t *testing.T) {
	text := FormatMessage(Payload{
		Type: TypeVacancyApplication,
		AdditionalData: map[string]any{
			"vacancy": "Прораб",
			"phone":   "+7 701 000 00 00",
			"age":     31,
		},
	})

	age := strings.Index(text, "age:")
	phone := strings.Index(text, "phone:")
	vacancy := strings.Index(text, "vacancy:")
	assert.True(t, age < phone && phone < vacancy, text)
	assert.Contains(t, text, "<b>age:</b> 31")
}

func TestChatIDAcceptsNumberOrString(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"chat_id": -1001234567890}`), &p))
	assert.Equal(t, ChatID("-1001234567890"), p.ChatID)

	require.NoError(t, json.Unmarshal([]byte(`{"chat_id": "@towerup_leads"}`), &p))
	assert.Equal(t, ChatID("@towerup_leads"), p.ChatID)

	assert.Error(t, json.Unmarshal([]byte(`{"chat_id": {}}`), &p))
}

func TestRelayMissingCredentials(t *testing.T) {
	relay := NewRelay(NewClient("http://127.0.0.1:0"), "", "", zap.NewNop())

	_, err := relay.Send(context.Background(), Payload{Name: "x"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = relay.Send(context.Background(), Payload{Name: "x", BotToken: "token"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRelaySendsWithPayloadCredentials(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":77}}`))
	}))
	defer srv.Close()

	relay := NewRelay(NewClient(srv.URL), "default-token", "default-chat", zap.NewNop())
	result, err := relay.Send(context.Background(), Payload{
		Name:     "Асель",
		Email:    "asel@example.kz",
		Message:  "Хочу консультацию",
		BotToken: "payload-token",
		ChatID:   "12345",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"message_id":77}`, string(result))
	assert.Equal(t, "/botpayload-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotBody.ChatID)
	assert.Equal(t, "HTML", gotBody.ParseMode)
	assert.Contains(t, gotBody.Text, "Хочу консультацию")
}

func TestRelayFallsBackToConfiguredCredentials(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	relay := NewRelay(NewClient(srv.URL), "default-token", "default-chat", zap.NewNop())
	_, err := relay.Send(context.Background(), Payload{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/botdefault-token/sendMessage", gotPath)
}

func TestRelayReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	relay := NewRelay(NewClient(srv.URL), "token", "chat", zap.NewNop())
	_, err := relay.Send(context.Background(), Payload{Name: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Description, "chat not found")
}

func TestTransportErrorKeepsCauseWithoutToken(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	const token = "123456:secret-bot-token"
	_, err := NewClient(srv.URL).SendMessage(ctx, token, "chat", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, err.Error(), token)
	assert.Contains(t, err.Error(), "<token>")

	var uerr *url.Error
	require.ErrorAs(t, err, &uerr)
	assert.NotContains(t, uerr.URL, token)
}
