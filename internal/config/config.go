// Package config loads and validates the swapguard configuration from the
// process environment and an optional dotenv file.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every load or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config is the root configuration. It is built once by Load and treated as
// read-only afterwards.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Bot       BotConfig       `mapstructure:"bot"`
	Spam      SpamConfig      `mapstructure:"spam"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// TelegramConfig holds the platform credential and the chat-facing settings.
type TelegramConfig struct {
	Token         string `mapstructure:"token"          validate:"required"`
	AdminUsername string `mapstructure:"admin_username" validate:"required"`
	SupportLink   string `mapstructure:"support_link"   validate:"required,url"`
	AdminChatID   int64  `mapstructure:"admin_chat_id"  validate:"required"`
	WebhookURL    string `mapstructure:"webhook_url"    validate:"required,url"`

	WebhookRetryAttempts uint          `mapstructure:"webhook_retry_attempts" validate:"min=1,max=10"`
	WebhookRetryDelay    time.Duration `mapstructure:"webhook_retry_delay"    validate:"min=100ms,max=1m"`

	// Consecutive outbound failures before calls fail fast for BreakerCooldown.
	BreakerMaxFailures int           `mapstructure:"breaker_max_failures" validate:"min=1,max=100"`
	BreakerCooldown    time.Duration `mapstructure:"breaker_cooldown"     validate:"min=1s,max=10m"`
}

// ServerConfig configures the inbound HTTP gateway.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s,max=1m"`
}

// LoggerConfig configures slog output and the rotating activity log file.
type LoggerConfig struct {
	Level        string `mapstructure:"level"         validate:"oneof=debug info warn error"`
	JSON         bool   `mapstructure:"json"`
	ActivityFile string `mapstructure:"activity_file" validate:"required"`
	MaxSizeMB    int    `mapstructure:"max_size_mb"   validate:"gt=0"`
	MaxBackups   int    `mapstructure:"max_backups"   validate:"gte=0"`
	MaxAgeDays   int    `mapstructure:"max_age_days"  validate:"gte=0"`
}

// DatabaseConfig points at the sqlite file holding the moderation activity table.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// BotConfig sizes the update queue and the handler pool.
type BotConfig struct {
	QueueSize             int `mapstructure:"queue_size"              validate:"min=1,max=10000"`
	MaxConcurrentHandlers int `mapstructure:"max_concurrent_handlers" validate:"min=1,max=256"`
}

// SpamConfig lists the banned phrases matched case-insensitively.
type SpamConfig struct {
	BannedPhrases []string `mapstructure:"banned_phrases" validate:"min=1,dive,required"`
}

// SchedulerConfig configures the background maintenance jobs.
type SchedulerConfig struct {
	Retention           time.Duration `mapstructure:"retention"            validate:"min=1h"`
	PruneEnabled        bool          `mapstructure:"prune_enabled"`
	PruneSchedule       string        `mapstructure:"prune_schedule"       validate:"required_if=PruneEnabled true"`
	MaintenanceEnabled  bool          `mapstructure:"maintenance_enabled"`
	MaintenanceSchedule string        `mapstructure:"maintenance_schedule" validate:"required_if=MaintenanceEnabled true"`
}

// TaskConfig is the scheduler's view of a single job.
type TaskConfig struct {
	Enabled  bool
	Schedule string
}

// Tasks maps task names to their schedule. Names match the task registry.
func (s SchedulerConfig) Tasks() map[string]TaskConfig {
	return map[string]TaskConfig{
		"activity_prune":  {Enabled: s.PruneEnabled, Schedule: s.PruneSchedule},
		"sql_maintenance": {Enabled: s.MaintenanceEnabled, Schedule: s.MaintenanceSchedule},
	}
}

// MessagesConfig holds every user-facing text. Format strings take the
// arguments documented next to their defaults.
type MessagesConfig struct {
	WelcomeFmt    string `mapstructure:"welcome_fmt"     validate:"required"`
	Help          string `mapstructure:"help"            validate:"required"`
	SpamNoticeFmt string `mapstructure:"spam_notice_fmt" validate:"required"`
	AdminAlertFmt string `mapstructure:"admin_alert_fmt" validate:"required"`
	ContactAdmin  string `mapstructure:"contact_admin"   validate:"required"`
	SupportChat   string `mapstructure:"support_chat"    validate:"required"`
	Liveness      string `mapstructure:"liveness"        validate:"required"`
}
