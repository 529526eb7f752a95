package telegram

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"
)

type MessageType string

const (
	TypeContact            MessageType = "contact"
	TypeVacancyApplication MessageType = "vacancy_application"
	TypeTenderSubmission   MessageType = "tender_submission"
	TypeCommercialOffer    MessageType = "commercial_offer"
)

// Payload is the body accepted by the notification endpoint.
type Payload struct {
	MessageID      string         `json:"message_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Message        string         `json:"message"`
	BotToken       string         `json:"bot_token,omitempty"`
	ChatID         ChatID         `json:"chat_id,omitempty"`
	Type           MessageType    `json:"type,omitempty"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// ChatID accepts both the numeric and the string JSON forms of a chat id.
type ChatID string

func (id *ChatID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ChatID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("chat_id must be a string or a number")
	}
	*id = ChatID(n.String())
	return nil
}

var headers = map[MessageType]string{
	TypeContact:            "📩 <b>Новое сообщение с сайта</b>",
	TypeVacancyApplication: "👷 <b>Новый отклик на вакансию</b>",
	TypeTenderSubmission:   "📑 <b>Новая заявка на тендер</b>",
	TypeCommercialOffer:    "💼 <b>Новое коммерческое предложение</b>",
}

var nameLabels = map[MessageType]string{
	TypeContact:            "Имя",
	TypeVacancyApplication: "Кандидат",
	TypeTenderSubmission:   "Компания",
	TypeCommercialOffer:    "Компания",
}

// FormatMessage renders the Telegram HTML text for p. Unknown or empty types
// use the contact template. Every user-supplied value is HTML-escaped.
func FormatMessage(p Payload) string {
	msgType := p.Type
	if _, ok := headers[msgType]; !ok {
		msgType = TypeContact
	}

	var b strings.Builder
	b.WriteString(headers[msgType])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "<b>%s:</b> %s\n", nameLabels[msgType], html.EscapeString(p.Name))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", html.EscapeString(p.Email))

	if len(p.AdditionalData) > 0 {
		keys := make([]string, 0, len(p.AdditionalData))
		for k := range p.AdditionalData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "<b>%s:</b> %s\n", html.EscapeString(k), html.EscapeString(fmt.Sprint(p.AdditionalData[k])))
		}
	}

	if strings.TrimSpace(p.Message) != "" {
		fmt.Fprintf(&b, "\n<b>Сообщение:</b>\n%s\n", html.EscapeString(p.Message))
	}
	if p.MessageID != "" {
		fmt.Fprintf(&b, "\n<i>ID: %s</i>", html.EscapeString(p.MessageID))
	}

	return strings.TrimRight(b.String(), "\n")
}
