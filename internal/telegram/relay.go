package telegram

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

var ErrMissingCredentials = errors.New("telegram bot token or chat id is not configured")

// Relay formats a payload and delivers it in a single attempt.
type Relay struct {
	client        *Client
	defaultToken  string
	defaultChatID string
	log           *zap.Logger
}

func NewRelay(client *Client, defaultToken, defaultChatID string, log *zap.Logger) *Relay {
	return &Relay{
		client:        client,
		defaultToken:  defaultToken,
		defaultChatID: defaultChatID,
		log:           log.Named("telegram"),
	}
}

// Send uses the payload's token and chat id when given, configuration otherwise.
func (r *Relay) Send(ctx context.Context, p Payload) (json.RawMessage, error) {
	token := p.BotToken
	if token == "" {
		token = r.defaultToken
	}
	chatID := string(p.ChatID)
	if chatID == "" {
		chatID = r.defaultChatID
	}
	if token == "" || chatID == "" {
		return nil, ErrMissingCredentials
	}

	result, err := r.client.SendMessage(ctx, token, chatID, FormatMessage(p))
	if err != nil {
		r.log.Error("telegram notification failed",
			zap.String("type", string(p.Type)),
			zap.String("message_id", p.MessageID),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}
