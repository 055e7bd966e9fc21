package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the activity store operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveModerationEvent appends a moderation record.
	SaveModerationEvent(ctx context.Context, event *ModerationEvent) error

	// PruneModerationEvents deletes records created before cutoff and returns
	// how many were removed.
	PruneModerationEvents(ctx context.Context, cutoff time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveModerationEvent(ctx context.Context, event *ModerationEvent) error {
	if event == nil {
		return fmt.Errorf("cannot save nil moderation event")
	}
	if event.ChatID == 0 {
		return fmt.Errorf("moderation event must have a non-zero chat_id")
	}
	if event.Reason == "" {
		return fmt.Errorf("moderation event must have a reason")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO moderation_events
            (created_at, chat_id, message_id, user_id, sender, content, reason, matched, deleted, notified, admin_notified)
        VALUES
            (:created_at, :chat_id, :message_id, :user_id, :sender, :content, :reason, :matched, :deleted, :notified, :admin_notified);
    `

	result, err := s.db.NamedExecContext(ctx, query, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving moderation event", "chat_id", event.ChatID, "user_id", event.UserID, "error", err)
		return fmt.Errorf("failed to save moderation event (chat %d, user %d): %w", event.ChatID, event.UserID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read moderation event id", "error", err)
		return nil
	}
	event.ID = id

	s.logger.DebugContext(ctx, "Moderation event saved", "id", id, "chat_id", event.ChatID, "reason", event.Reason)
	return nil
}

func (s *sqlxStore) PruneModerationEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM moderation_events WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning moderation events", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("failed to prune moderation events: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned moderation events: %w", err)
	}

	s.logger.InfoContext(ctx, "Pruned moderation events", "cutoff", cutoff, "removed", removed)
	return removed, nil
}

// RunSQLMaintenance executes VACUUM followed by PRAGMA optimize.
// VACUUM must run outside a transaction in SQLite.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to execute VACUUM", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		s.logger.WarnContext(ctx, "PRAGMA optimize failed", "error", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed successfully.")
	return nil
}
