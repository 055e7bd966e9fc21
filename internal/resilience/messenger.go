package resilience

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/swapguard/internal/telegram"
)

// Messenger routes every outbound call of the wrapped client through one
// circuit breaker.
type Messenger struct {
	inner telegram.Messenger
	cb    *CircuitBreaker
}

var _ telegram.Messenger = (*Messenger)(nil)

// NewMessenger wraps inner with cb.
func NewMessenger(inner telegram.Messenger, cb *CircuitBreaker) *Messenger {
	return &Messenger{inner: inner, cb: cb}
}

func (m *Messenger) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	var msg *models.Message
	err := m.cb.Execute(ctx, func(ctx context.Context) error {
		var err error
		msg, err = m.inner.SendMessage(ctx, params)
		return err
	})
	return msg, err
}

func (m *Messenger) DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error) {
	var ok bool
	err := m.cb.Execute(ctx, func(ctx context.Context) error {
		var err error
		ok, err = m.inner.DeleteMessage(ctx, params)
		return err
	})
	return ok, err
}
