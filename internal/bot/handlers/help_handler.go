package handlers

import (
	"context"

	"github.com/edgard/swapguard/internal/event"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) HandlerFunc {
	return helpHandler{deps}.Handle
}

// helpHandler processes the /help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, ev *event.Event) {
	log := h.deps.Logger.With("handler", "help")

	log.InfoContext(ctx, "Handling /help command", "chat_id", ev.ChatID, "user_id", ev.Sender.ID)

	if err := replyWithMenu(ctx, h.deps, ev, h.deps.Config.Messages.Help); err != nil {
		log.ErrorContext(ctx, "Failed to send help message", "error", err, "chat_id", ev.ChatID)
	} else {
		log.DebugContext(ctx, "Successfully sent help message", "chat_id", ev.ChatID)
	}
}
