// Package telegram creates the shared Telegram client and registers the bot's
// webhook and command list with the platform.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Messenger is the part of the Telegram client used by handlers and the
// moderation action. *bot.Bot satisfies it and is safe for concurrent use.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

// Registrar is the part of the client used once at startup.
type Registrar interface {
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

var (
	_ Messenger = (*bot.Bot)(nil)
	_ Registrar = (*bot.Bot)(nil)
)

// DefaultCommands are advertised in the Telegram command menu.
var DefaultCommands = []models.BotCommand{
	{Command: "start", Description: "Show the welcome menu"},
	{Command: "help", Description: "Contact the admin or the support chat"},
}

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
// Updates are delivered through the gateway, so the client never polls.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

// RetryPolicy bounds webhook registration attempts. Delay doubles after
// each failed attempt.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// RegisterWebhook points Telegram at endpoint, retrying transport failures.
// A definite rejection or exhausted retries are fatal for startup.
// The command list is advertised best effort.
func RegisterWebhook(ctx context.Context, r Registrar, endpoint string, policy RetryPolicy, logger *slog.Logger) error {
	if r == nil {
		return fmt.Errorf("registrar cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if policy.Attempts == 0 {
		policy.Attempts = 1
	}
	log := logger.With("component", "webhook_registry")

	err := retry.Do(
		func() error {
			ok, err := r.SetWebhook(ctx, &bot.SetWebhookParams{
				URL:            endpoint,
				AllowedUpdates: []string{"message"},
			})
			if err != nil {
				return err
			}
			if !ok {
				return retry.Unrecoverable(fmt.Errorf("telegram rejected webhook %s", endpoint))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(policy.Attempts),
		retry.Delay(policy.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WarnContext(ctx, "Webhook registration failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to set webhook %s: %w", endpoint, err)
	}
	log.InfoContext(ctx, "Webhook set successfully", "url", endpoint)

	if _, err := r.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: DefaultCommands}); err != nil {
		log.WarnContext(ctx, "Failed to set bot commands", "error", err)
	} else {
		log.DebugContext(ctx, "Bot commands set", "count", len(DefaultCommands))
	}
	return nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
