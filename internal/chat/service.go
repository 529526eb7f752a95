package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var (
	ErrNotConfigured = errors.New("chat is not configured")
	ErrBusy          = errors.New("a message for this session is already being processed")
	ErrEmptyMessage  = errors.New("message is empty")
)

// MaxHistory bounds the stored conversation; older turns are dropped first.
const MaxHistory = 50

const systemPrompt = `Ты — виртуальный консультант строительной компании TowerUp (Шымкент, Казахстан).
Отвечай только на вопросы о компании TowerUp, её жилых комплексах (в том числе ЖК «Пушкин»), планировках и ценах, ходе строительства, ипотеке и рассрочке, вакансиях, тендерах и сотрудничестве.
Если вопрос не относится к этим темам, вежливо откажись и предложи задать вопрос о проектах компании.
Не придумывай цены, сроки и адреса: если точных данных нет, предложи оставить заявку на сайте или позвонить в отдел продаж.
Отвечай кратко, дружелюбно и на языке пользователя (русский, казахский или английский).`

// Generator produces the assistant's reply for a conversation.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, systemPrompt string, history []Message) (string, error)
}

// Outcome is reported to the metrics hook after each send.
type Outcome string

const (
	OutcomeAnswered Outcome = "answered"
	OutcomeFallback Outcome = "fallback"
)

type Service struct {
	generator Generator
	history   HistoryStore
	log       *zap.Logger
	observe   func(Outcome)
	now       func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(generator Generator, history HistoryStore, log *zap.Logger) *Service {
	return &Service{
		generator: generator,
		history:   history,
		log:       log.Named("chat"),
		observe:   func(Outcome) {},
		now:       time.Now,
		inflight:  make(map[string]struct{}),
	}
}

// OnOutcome registers a callback invoked after every completed send.
func (s *Service) OnOutcome(fn func(Outcome)) {
	s.observe = fn
}

func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	history, err := s.history.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []Message{}
	}
	return history, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.history.Clear(ctx, sessionID)
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// Send appends the user's text, asks the model, and appends its answer. When
// the model fails or is filtered, a localized fallback becomes the answer
// instead of an error. The updated history is returned.
func (s *Service) Send(ctx context.Context, sessionID, text string, lang language.Tag) ([]Message, error) {
	if !s.generator.Configured() {
		return nil, ErrNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if !s.acquire(sessionID) {
		return nil, ErrBusy
	}
	defer s.release(sessionID)

	history, err := s.history.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history = trim(append(history, Message{Role: RoleUser, Content: text, Timestamp: s.now()}))
	if err := s.history.Save(ctx, sessionID, history); err != nil {
		return nil, fmt.Errorf("failed to save chat history: %w", err)
	}

	answer, err := s.generator.Generate(ctx, systemPrompt, history)
	outcome := OutcomeAnswered
	if err != nil {
		s.log.Warn("chat generation failed, using fallback",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		answer = FallbackMessage(lang)
		outcome = OutcomeFallback
	}

	history = trim(append(history, Message{Role: RoleAssistant, Content: answer, Timestamp: s.now()}))
	if err := s.history.Save(ctx, sessionID, history); err != nil {
		return nil, fmt.Errorf("failed to save chat history: %w", err)
	}

	s.observe(outcome)
	return history, nil
}

// trim keeps at most MaxHistory messages and drops leading assistant turns,
// so the window the model sees always opens with a user question.
func trim(history []Message) []Message {
	start := 0
	if len(history) > MaxHistory {
		start = len(history) - MaxHistory
	}
	for start < len(history)-1 && history[start].Role != RoleUser {
		start++
	}
	if start == 0 {
		return history
	}
	return append([]Message(nil), history[start:]...)
}
