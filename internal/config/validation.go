package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct-tag constraints over the whole configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// WebhookEndpoint is the full URL registered with Telegram as the update target.
func (c *Config) WebhookEndpoint() string {
	return c.Telegram.WebhookURL + "/webhook"
}

// ListenAddr is the gateway's listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
