package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/swapguard/internal/event"
)

// NewWelcomeHandler returns a handler greeting every newly joined member.
func NewWelcomeHandler(deps HandlerDeps) HandlerFunc {
	return welcomeHandler{deps}.Handle
}

type welcomeHandler struct {
	deps HandlerDeps
}

// Handle sends one greeting per member in join order. A failed greeting is
// logged and the next member is still greeted.
func (h welcomeHandler) Handle(ctx context.Context, ev *event.Event) {
	log := h.deps.Logger.With("handler", "welcome")

	for i, member := range ev.NewMembers {
		log.InfoContext(ctx, "New member joined", "chat_id", ev.ChatID, "user_id", member.ID, "member", member.Mention())

		text := fmt.Sprintf(h.deps.Config.Messages.WelcomeFmt, member.FirstName)
		if err := replyWithMenu(ctx, h.deps, ev, text); err != nil {
			log.ErrorContext(ctx, "Failed to greet new member", "error", err, "chat_id", ev.ChatID, "user_id", member.ID, "position", i)
		}
	}
}
