package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Load builds the configuration from, in increasing priority:
// 1. Default values
// 2. The dotenv file at envFile (optional, skipped when missing)
// 3. Process environment variables
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	if err := loadEnvFile(v, envFile); err != nil {
		return nil, fmt.Errorf("%w: failed to load env file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// loadEnvFile reads KEY=value pairs from a dotenv file and installs them
// below the environment. A missing file is not an error.
func loadEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	f := viper.New()
	f.SetConfigFile(path)
	f.SetConfigType("env")
	if err := f.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for key, env := range envBindings {
		if f.IsSet(env) {
			v.SetDefault(key, f.Get(env))
		}
	}
	return nil
}

// setDefaults sets default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.webhook_retry_attempts", DefaultWebhookRetryAttempts)
	v.SetDefault("telegram.webhook_retry_delay", DefaultWebhookRetryDelay)
	v.SetDefault("telegram.breaker_max_failures", DefaultBreakerMaxFailures)
	v.SetDefault("telegram.breaker_cooldown", DefaultBreakerCooldown)

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)
	v.SetDefault("logger.activity_file", DefaultActivityFile)
	v.SetDefault("logger.max_size_mb", DefaultLogMaxSizeMB)
	v.SetDefault("logger.max_backups", DefaultLogBackups)
	v.SetDefault("logger.max_age_days", DefaultLogMaxAge)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("bot.queue_size", DefaultQueueSize)
	v.SetDefault("bot.max_concurrent_handlers", DefaultMaxConcurrentHandlers)

	v.SetDefault("spam.banned_phrases", DefaultBannedPhrases)

	v.SetDefault("scheduler.retention", DefaultRetention)
	v.SetDefault("scheduler.prune_enabled", true)
	v.SetDefault("scheduler.prune_schedule", DefaultPruneSchedule)
	v.SetDefault("scheduler.maintenance_enabled", true)
	v.SetDefault("scheduler.maintenance_schedule", DefaultMaintenanceSchedule)

	v.SetDefault("messages.welcome_fmt", DefaultMessages.WelcomeFmt)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.spam_notice_fmt", DefaultMessages.SpamNoticeFmt)
	v.SetDefault("messages.admin_alert_fmt", DefaultMessages.AdminAlertFmt)
	v.SetDefault("messages.contact_admin", DefaultMessages.ContactAdmin)
	v.SetDefault("messages.support_chat", DefaultMessages.SupportChat)
	v.SetDefault("messages.liveness", DefaultMessages.Liveness)
}

func (c *Config) normalize() {
	c.Telegram.AdminUsername = strings.TrimSpace(c.Telegram.AdminUsername)
	c.Telegram.WebhookURL = strings.TrimRight(strings.TrimSpace(c.Telegram.WebhookURL), "/")
	c.Logger.Level = strings.ToLower(strings.TrimSpace(c.Logger.Level))

	phrases := make([]string, 0, len(c.Spam.BannedPhrases))
	for _, p := range c.Spam.BannedPhrases {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	c.Spam.BannedPhrases = phrases
}
