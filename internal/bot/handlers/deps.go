package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/swapguard/internal/config"
	"github.com/edgard/swapguard/internal/event"
	"github.com/edgard/swapguard/internal/moderation"
	"github.com/edgard/swapguard/internal/spam"
	"github.com/edgard/swapguard/internal/telegram"
)

// Moderator runs the moderation action for a positive verdict.
type Moderator interface {
	Run(ctx context.Context, ev *event.Event, verdict spam.Verdict) moderation.Outcome
}

// HandlerDeps provides dependencies for the event handlers. Every field is
// shared read-only across concurrent handler invocations.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Messenger telegram.Messenger
	Matcher   *spam.Matcher
	Moderator Moderator
}
