package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/swapguard/internal/event"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler greets the sender by first name and attaches the main menu.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, ev *event.Event) {
	log := h.deps.Logger.With("handler", "start")

	log.InfoContext(ctx, "User started interaction", "chat_id", ev.ChatID, "user_id", ev.Sender.ID, "username", ev.Sender.Username)

	text := fmt.Sprintf(h.deps.Config.Messages.WelcomeFmt, ev.Sender.FirstName)
	if err := replyWithMenu(ctx, h.deps, ev, text); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", ev.ChatID)
	} else {
		log.DebugContext(ctx, "Successfully sent welcome message", "chat_id", ev.ChatID)
	}
}
