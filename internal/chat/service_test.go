package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func geminiServer(t *testing.T, hits *atomic.Int32, respond func(w http.ResponseWriter, req GeminiRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req GeminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		respond(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func answer(text string) func(http.ResponseWriter, GeminiRequest) {
	return func(w http.ResponseWriter, _ GeminiRequest) {
		_ = json.NewEncoder(w).Encode(GeminiResponse{Candidates: []GeminiCandidate{{
			Content:      GeminiContent{Role: "model", Parts: []GeminiPart{{Text: text}}},
			FinishReason: "STOP",
		}}})
	}
}

func TestSendAppendsUserAndAssistantTurns(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	var captured GeminiRequest
	srv := geminiServer(t, &hits, func(w http.ResponseWriter, req GeminiRequest) {
		captured = req
		answer("ЖК «Пушкин» находится на ул. Пушкина, 12.")(w, req)
	})

	store := NewMemoryHistoryStore()
	svc := NewService(NewClient(srv.URL, "real-key", "gemini-2.0-flash"), store, zap.NewNop())

	history, err := svc.Send(ctx, "s1", "Где находится ЖК Пушкин?", language.Russian)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Contains(t, history[1].Content, "ул. Пушкина")

	persisted, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, history, persisted)

	assert.Equal(t, int32(1), hits.Load())
	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "TowerUp")
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.NotEmpty(t, captured.SafetySettings)
}

func TestSendSendsFullHistoryWithModelRole(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	var captured GeminiRequest
	srv := geminiServer(t, &hits, func(w http.ResponseWriter, req GeminiRequest) {
		captured = req
		answer("ok")(w, req)
	})

	svc := NewService(NewClient(srv.URL, "real-key", "gemini-2.0-flash"), NewMemoryHistoryStore(), zap.NewNop())
	_, err := svc.Send(ctx, "s1", "Привет", language.Russian)
	require.NoError(t, err)
	history, err := svc.Send(ctx, "s1", "Какие есть планировки?", language.Russian)
	require.NoError(t, err)

	assert.Len(t, history, 4)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, []string{"user", "model", "user"}, []string{
		captured.Contents[0].Role, captured.Contents[1].Role, captured.Contents[2].Role,
	})
}

func TestSendWithPlaceholderKeyMakesNoCall(t *testing.T) {
	ctx := context.Background()

	for _, key := range []string{"", "your_api_key", "YOUR_API_KEY", "your-gemini-api-key"} {
		t.Run(key, func(t *testing.T) {
			var hits atomic.Int32
			srv := geminiServer(t, &hits, answer("should not be called"))

			store := NewMemoryHistoryStore()
			existing := []Message{{Role: RoleUser, Content: "старое сообщение"}}
			require.NoError(t, store.Save(ctx, "s1", existing))

			svc := NewService(NewClient(srv.URL, key, "gemini-2.0-flash"), store, zap.NewNop())
			_, err := svc.Send(ctx, "s1", "Где находится ЖК Пушкин?", language.Russian)

			assert.ErrorIs(t, err, ErrNotConfigured)
			assert.Zero(t, hits.Load())
			persisted, _ := store.Load(ctx, "s1")
			assert.Equal(t, existing, persisted)
		})
	}
}

func TestSendFallsBackOnSafetyFilter(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	srv := geminiServer(t, &hits, func(w http.ResponseWriter, _ GeminiRequest) {
		_ = json.NewEncoder(w).Encode(GeminiResponse{Candidates: []GeminiCandidate{{FinishReason: "SAFETY"}}})
	})

	var outcomes []Outcome
	svc := NewService(NewClient(srv.URL, "real-key", "gemini-2.0-flash"), NewMemoryHistoryStore(), zap.NewNop())
	svc.OnOutcome(func(o Outcome) { outcomes = append(outcomes, o) })

	history, err := svc.Send(ctx, "s1", "Tell me something", language.English)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, FallbackMessage(language.English), history[1].Content)
	assert.Equal(t, []Outcome{OutcomeFallback}, outcomes)
}

func TestSendFallsBackOnHTTPError(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	srv := geminiServer(t, &hits, func(w http.ResponseWriter, _ GeminiRequest) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := NewService(NewClient(srv.URL, "real-key", "gemini-2.0-flash"), NewMemoryHistoryStore(), zap.NewNop())
	history, err := svc.Send(ctx, "s1", "Сәлем", language.Kazakh)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, FallbackMessage(language.Kazakh), history[1].Content)
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) Configured() bool { return true }

func (g *blockingGenerator) Generate(context.Context, string, []Message) (string, error) {
	close(g.started)
	<-g.release
	return "ok", nil
}

func TestSendRejectsConcurrentSendForSameSession(t *testing.T) {
	ctx := context.Background()
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(gen, NewMemoryHistoryStore(), zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(ctx, "s1", "first", language.Russian)
		done <- err
	}()
	<-gen.started

	_, err := svc.Send(ctx, "s1", "second", language.Russian)
	assert.ErrorIs(t, err, ErrBusy)

	close(gen.release)
	require.NoError(t, <-done)
}

func TestHistoryIsCapped(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	srv := geminiServer(t, &hits, answer("ok"))

	store := NewMemoryHistoryStore()
	long := make([]Message, MaxHistory)
	for i := range long {
		long[i] = Message{Role: RoleUser, Content: "old"}
	}
	require.NoError(t, store.Save(ctx, "s1", long))

	svc := NewService(NewClient(srv.URL, "real-key", "gemini-2.0-flash"), store, zap.NewNop())
	history, err := svc.Send(ctx, "s1", "new", language.Russian)
	require.NoError(t, err)
	assert.Len(t, history, MaxHistory)
	assert.Equal(t, "ok", history[len(history)-1].Content)
	assert.Equal(t, "new", history[len(history)-2].Content)
}

type recordingGenerator struct {
	sent [][]Message
}

func (g *recordingGenerator) Configured() bool { return true }

func (g *recordingGenerator) Generate(_ context.Context, _ string, history []Message) (string, error) {
	g.sent = append(g.sent, append([]Message(nil), history...))
	return "ok", nil
}

func TestCappedHistoryStartsWithUserTurn(t *testing.T) {
	ctx := context.Background()
	gen := &recordingGenerator{}
	svc := NewService(gen, NewMemoryHistoryStore(), zap.NewNop())

	var history []Message
	for i := 0; i < MaxHistory/2+3; i++ {
		var err error
		history, err = svc.Send(ctx, "s1", fmt.Sprintf("question %d", i), language.Russian)
		require.NoError(t, err)
	}

	for i, sent := range gen.sent {
		require.NotEmpty(t, sent)
		assert.Equal(t, RoleUser, sent[0].Role, "send %d", i+1)
		assert.LessOrEqual(t, len(sent), MaxHistory)
	}
	assert.Len(t, history, MaxHistory)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "question 3", history[0].Content)
	assert.Equal(t, RoleAssistant, history[len(history)-1].Role)
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, language.Russian, ResolveLanguage(""))
	assert.Equal(t, language.Russian, ResolveLanguage("ru-RU,ru;q=0.9"))
	assert.Equal(t, language.Kazakh, ResolveLanguage("kk-KZ,kk;q=0.9,ru;q=0.8"))
	assert.Equal(t, language.English, ResolveLanguage("en-US,en;q=0.9"))
	assert.Equal(t, language.Russian, ResolveLanguage("de-DE"))
}
