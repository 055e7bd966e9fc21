// Package moderation removes spam messages and reports them to the admin.
//
// An action runs as independent best-effort steps. Each step reports its
// own result and a failing step never prevents the next one; nothing is
// retried and nothing is returned as an error.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/edgard/swapguard/internal/database"
	"github.com/edgard/swapguard/internal/event"
	"github.com/edgard/swapguard/internal/spam"
	"github.com/edgard/swapguard/internal/telegram"
)

// Step names reported in an Outcome.
const (
	StepRemoval      = "removal"
	StepAdminForward = "admin_forward"
	StepRecord       = "record"
)

// Recorder appends moderation records to the activity store.
type Recorder interface {
	SaveModerationEvent(ctx context.Context, event *database.ModerationEvent) error
}

// StepResult is the result of one best-effort step.
type StepResult struct {
	Name string
	Err  error
}

// OK reports whether the step completed.
func (r StepResult) OK() bool {
	return r.Err == nil
}

// Outcome collects the step results of one action.
type Outcome struct {
	Skipped      bool
	Deleted      bool
	Removal      StepResult
	AdminForward StepResult
	Record       StepResult
}

// Log writes failed steps at error level and the summary at info level.
// It is the single place where step errors end up; they are not propagated.
func (o Outcome) Log(ctx context.Context, log *slog.Logger) {
	if o.Skipped {
		log.DebugContext(ctx, "Moderation skipped")
		return
	}
	for _, step := range []StepResult{o.Removal, o.AdminForward, o.Record} {
		if !step.OK() {
			log.ErrorContext(ctx, "Moderation step failed", "step", step.Name, "error", step.Err)
		}
	}
	log.InfoContext(ctx, "Moderation finished",
		"deleted", o.Deleted,
		"removal_ok", o.Removal.OK(),
		"admin_forward_ok", o.AdminForward.OK(),
		"record_ok", o.Record.OK(),
	)
}

// Messages are the texts used by the action.
type Messages struct {
	NoticeFmt     string // sender
	AdminAlertFmt string // sender, original text
}

// Action performs the moderation steps for a spam verdict.
type Action struct {
	messenger   telegram.Messenger
	recorder    Recorder
	adminChatID int64
	messages    Messages
	logger      *slog.Logger
}

// NewAction creates an action. recorder may be nil, in which case nothing is
// recorded.
func NewAction(messenger telegram.Messenger, recorder Recorder, adminChatID int64, messages Messages, logger *slog.Logger) *Action {
	if logger == nil {
		logger = slog.Default()
	}
	return &Action{
		messenger:   messenger,
		recorder:    recorder,
		adminChatID: adminChatID,
		messages:    messages,
		logger:      logger.With("component", "moderation"),
	}
}

// Run executes the removal and admin forward steps for ev and records the
// result. It does nothing when verdict is negative or ev has no text.
func (a *Action) Run(ctx context.Context, ev *event.Event, verdict spam.Verdict) Outcome {
	if !verdict.Spam || ev == nil || ev.Text == "" {
		return Outcome{Skipped: true}
	}

	log := a.logger.With("trace_id", ev.TraceID, "chat_id", ev.ChatID, "user_id", ev.Sender.ID)
	log.WarnContext(ctx, "Spam detected", "sender", ev.Sender.Mention(), "reason", verdict.Reason, "match", verdict.Match, "text", ev.Text)

	var out Outcome
	out.Deleted, out.Removal = a.remove(ctx, ev)
	out.AdminForward = a.forwardToAdmin(ctx, ev)
	out.Record = a.record(ctx, ev, verdict, out)
	return out
}

// remove deletes the message, then tells the chat why. The notice is only
// posted once the delete succeeded.
func (a *Action) remove(ctx context.Context, ev *event.Event) (deleted bool, res StepResult) {
	res.Name = StepRemoval
	defer recoverStep(&res)

	if _, err := a.messenger.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    ev.ChatID,
		MessageID: ev.MessageID,
	}); err != nil {
		res.Err = fmt.Errorf("failed to delete message %d: %w", ev.MessageID, err)
		return false, res
	}
	deleted = true

	if _, err := a.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: ev.ChatID,
		Text:   fmt.Sprintf(a.messages.NoticeFmt, ev.Sender.Mention()),
	}); err != nil {
		res.Err = fmt.Errorf("failed to send removal notice: %w", err)
	}
	return deleted, res
}

func (a *Action) forwardToAdmin(ctx context.Context, ev *event.Event) (res StepResult) {
	res.Name = StepAdminForward
	defer recoverStep(&res)

	if _, err := a.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: a.adminChatID,
		Text:   fmt.Sprintf(a.messages.AdminAlertFmt, ev.Sender.Mention(), ev.Text),
	}); err != nil {
		res.Err = fmt.Errorf("failed to forward to admin chat %d: %w", a.adminChatID, err)
	}
	return res
}

func (a *Action) record(ctx context.Context, ev *event.Event, verdict spam.Verdict, out Outcome) (res StepResult) {
	res.Name = StepRecord
	if a.recorder == nil {
		return res
	}
	defer recoverStep(&res)

	err := a.recorder.SaveModerationEvent(ctx, &database.ModerationEvent{
		CreatedAt:     time.Now().UTC(),
		ChatID:        ev.ChatID,
		MessageID:     int64(ev.MessageID),
		UserID:        ev.Sender.ID,
		Sender:        ev.Sender.Mention(),
		Content:       ev.Text,
		Reason:        verdict.Reason,
		Match:         verdict.Match,
		Deleted:       out.Deleted,
		Notified:      out.Removal.OK(),
		AdminNotified: out.AdminForward.OK(),
	})
	if err != nil {
		res.Err = fmt.Errorf("failed to record moderation event: %w", err)
	}
	return res
}

// recoverStep turns a panic inside a step into that step's error.
func recoverStep(res *StepResult) {
	if r := recover(); r != nil {
		res.Err = fmt.Errorf("step %s panicked: %v", res.Name, r)
	}
}
