// Package logger provides structured logging for swapguard.
// It uses Go's slog package with configurable levels and formats, and a
// size-rotated activity file fed alongside stdout.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/edgard/swapguard/internal/bot/handlers"
	"github.com/edgard/swapguard/internal/config"
	"github.com/edgard/swapguard/internal/event"
)

// NewLogger creates a new slog Logger writing to w with the specified level
// and format. If jsonOutput is true, logs are formatted as JSON, otherwise as
// text. A nil w means stdout.
func NewLogger(levelStr string, jsonOutput bool, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewActivityWriter opens the rotating activity log described by cfg.
// The caller closes it on shutdown.
func NewActivityWriter(cfg config.LoggerConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.ActivityFile,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}
}

// Output fans log lines out to stdout and the activity file.
func Output(activity io.Writer) io.Writer {
	if activity == nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, activity)
}

// Middleware logs every dispatched event and how long its handler took.
func Middleware(log *slog.Logger) handlers.Middleware {
	return func(next handlers.HandlerFunc) handlers.HandlerFunc {
		return func(ctx context.Context, ev *event.Event) {
			startTime := time.Now()

			logEntry := log.With(
				"trace_id", ev.TraceID,
				"update_id", ev.UpdateID,
				"event_kind", ev.Kind.String(),
				"chat_id", ev.ChatID,
			)

			switch ev.Kind {
			case event.KindCommand:
				logEntry = logEntry.With("command", ev.Command, "user_id", ev.Sender.ID)
			case event.KindNewMembers:
				logEntry = logEntry.With("member_count", len(ev.NewMembers))
			case event.KindText:
				logEntry = logEntry.With(
					"message_id", ev.MessageID,
					"user_id", ev.Sender.ID,
					"text_preview", truncateString(ev.Text, 50),
				)
			}

			logEntry.InfoContext(ctx, "Processing event")

			next(ctx, ev)

			logEntry.InfoContext(ctx, "Finished processing event", "duration", time.Since(startTime))
		}
	}
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}
