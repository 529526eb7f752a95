package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"towerup-backend/internal/telegram"
)

const notifyTimeout = 15 * time.Second

// Notifier delivers Telegram notifications off the request path. A failed
// notification is logged and never affects the stored submission.
type Notifier struct {
	relay    *telegram.Relay
	log      *zap.Logger
	onResult func(telegram.MessageType, error)
	wg       sync.WaitGroup
}

func NewNotifier(relay *telegram.Relay, log *zap.Logger) *Notifier {
	return &Notifier{relay: relay, log: log.Named("notifier")}
}

func (n *Notifier) OnResult(fn func(telegram.MessageType, error)) {
	n.onResult = fn
}

func (n *Notifier) Notify(p telegram.Payload) {
	if n == nil || n.relay == nil {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		_, err := n.relay.Send(ctx, p)
		if n.onResult != nil {
			n.onResult(p.Type, err)
		}
		if err != nil {
			n.log.Warn("notification not delivered",
				zap.String("type", string(p.Type)),
				zap.String("message_id", p.MessageID),
				zap.Error(err),
			)
			return
		}
		n.log.Debug("notification delivered", zap.String("message_id", p.MessageID))
	}()
}

// Wait blocks until every pending notification has finished.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}
