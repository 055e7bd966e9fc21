package database

import "time"

// ModerationEvent is one row of the append-only activity table, written after
// a spam message was handled. It records what was attempted and what
// succeeded; nothing in the bot reads it back.
type ModerationEvent struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID    int64  `db:"chat_id"`
	MessageID int64  `db:"message_id"`
	UserID    int64  `db:"user_id"`
	Sender    string `db:"sender"`
	Content   string `db:"content"`

	Reason string `db:"reason"`
	Match  string `db:"matched"`

	Deleted       bool `db:"deleted"`
	Notified      bool `db:"notified"`
	AdminNotified bool `db:"admin_notified"`
}
