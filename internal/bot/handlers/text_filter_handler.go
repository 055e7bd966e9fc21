package handlers

import (
	"context"

	"github.com/edgard/swapguard/internal/event"
)

// NewTextFilterHandler returns the spam filter for plain text messages.
func NewTextFilterHandler(deps HandlerDeps) HandlerFunc {
	return textFilterHandler{deps}.Handle
}

type textFilterHandler struct {
	deps HandlerDeps
}

// Handle classifies the message and hands spam to the moderator. Clean
// messages get no reply.
func (h textFilterHandler) Handle(ctx context.Context, ev *event.Event) {
	if ev.Text == "" {
		return
	}

	verdict := h.deps.Matcher.Check(ev.Text)
	if !verdict.Spam {
		return
	}

	log := h.deps.Logger.With("handler", "text_filter", "trace_id", ev.TraceID, "chat_id", ev.ChatID, "user_id", ev.Sender.ID)
	outcome := h.deps.Moderator.Run(ctx, ev, verdict)
	outcome.Log(ctx, log)
}
