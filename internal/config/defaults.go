package config

import (
	"time"

	"github.com/edgard/swapguard/internal/menu"
	"github.com/edgard/swapguard/internal/spam"
)

// Default values for optional configuration.
const (
	DefaultWebhookRetryAttempts = 3
	DefaultWebhookRetryDelay    = time.Second
	DefaultBreakerMaxFailures   = 5
	DefaultBreakerCooldown      = 30 * time.Second

	DefaultPort            = 5000
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel     = "info"
	DefaultActivityFile = "bot_activity.log"
	DefaultLogMaxSizeMB = 10
	DefaultLogBackups   = 5
	DefaultLogMaxAge    = 30

	DefaultDBPath = "activity.db"

	DefaultQueueSize             = 100
	DefaultMaxConcurrentHandlers = 8

	DefaultRetention           = 30 * 24 * time.Hour
	DefaultPruneSchedule       = "0 0 3 * * *"
	DefaultMaintenanceSchedule = "0 30 3 * * 0"
)

// DefaultBannedPhrases is the phrase list used when none is configured.
var DefaultBannedPhrases = spam.DefaultPhrases

// DefaultMessages are the user-facing texts.
var DefaultMessages = MessagesConfig{
	WelcomeFmt:    "👋 Welcome %s! Need help or want to contact support?", // first name
	Help:          "Need help or want to reach admin?",
	SpamNoticeFmt: "🚫 Message removed. @%s, links and promotions aren't allowed.", // sender
	AdminAlertFmt: "⚠️ Spam Alert from @%s:\n%s",                                  // sender, original text
	ContactAdmin:  menu.ContactAdminLabel,
	SupportChat:   menu.SupportChatLabel,
	Liveness:      "🤖 CryptoSwap Bot is live!",
}

// envBindings maps configuration keys to the environment variables that set them.
var envBindings = map[string]string{
	"telegram.token":          "BOT_TOKEN",
	"telegram.admin_username": "ADMIN_USERNAME",
	"telegram.support_link":   "SUPPORT_LINK",
	"telegram.admin_chat_id":  "ADMIN_CHAT_ID",
	"telegram.webhook_url":    "WEBHOOK_URL",

	"telegram.webhook_retry_attempts": "WEBHOOK_RETRY_ATTEMPTS",
	"telegram.webhook_retry_delay":    "WEBHOOK_RETRY_DELAY",
	"telegram.breaker_max_failures":   "BREAKER_MAX_FAILURES",
	"telegram.breaker_cooldown":       "BREAKER_COOLDOWN",

	"server.port":             "PORT",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",

	"logger.level":         "LOG_LEVEL",
	"logger.json":          "LOG_JSON",
	"logger.activity_file": "ACTIVITY_LOG_PATH",
	"logger.max_size_mb":   "ACTIVITY_LOG_MAX_SIZE_MB",
	"logger.max_backups":   "ACTIVITY_LOG_MAX_BACKUPS",
	"logger.max_age_days":  "ACTIVITY_LOG_MAX_AGE_DAYS",

	"database.path": "DB_PATH",

	"bot.queue_size":              "QUEUE_SIZE",
	"bot.max_concurrent_handlers": "MAX_CONCURRENT_HANDLERS",

	"spam.banned_phrases": "SPAM_BANNED_PHRASES",

	"scheduler.retention":            "ACTIVITY_RETENTION",
	"scheduler.prune_enabled":        "PRUNE_ENABLED",
	"scheduler.prune_schedule":       "PRUNE_SCHEDULE",
	"scheduler.maintenance_enabled":  "MAINTENANCE_ENABLED",
	"scheduler.maintenance_schedule": "MAINTENANCE_SCHEDULE",

	"messages.welcome_fmt":     "MSG_WELCOME_FMT",
	"messages.help":            "MSG_HELP",
	"messages.spam_notice_fmt": "MSG_SPAM_NOTICE_FMT",
	"messages.admin_alert_fmt": "MSG_ADMIN_ALERT_FMT",
	"messages.contact_admin":   "MSG_CONTACT_ADMIN",
	"messages.support_chat":    "MSG_SUPPORT_CHAT",
	"messages.liveness":        "MSG_LIVENESS",
}
