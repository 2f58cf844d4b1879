// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all server configuration.
type Config struct {
	Port         string
	FrontendURL  string
	Mail         MailConfig
	ContactRPS   float64
	ContactBurst int
}

// MailConfig controls the outbound SMTP channel. Host, User and Pass
// may legitimately be empty on a partial deployment; the contact
// pipeline reports them as missing at submit time.
type MailConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	To      string
	Timeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "4000"),
		FrontendURL: getEnv("FRONTEND_URL", ""),
		Mail: MailConfig{
			Host:    getEnv("SMTP_HOST", ""),
			Port:    getEnvInt("SMTP_PORT", 587),
			User:    getEnv("SMTP_USER", ""),
			Pass:    getEnv("SMTP_PASS", ""),
			From:    getEnv("CONTACT_FROM", "bot@spinfactor.it"),
			To:      getEnv("CONTACT_TO", "hello@spinfactor.it"),
			Timeout: getEnvDuration("SMTP_TIMEOUT", 15*time.Second),
		},
		ContactRPS:   getEnvFloat("CONTACT_RPS", 1),
		ContactBurst: getEnvInt("CONTACT_BURST", 3),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("SMTP_PORT must be a valid port number")
	}
	if c.ContactBurst <= 0 {
		return fmt.Errorf("CONTACT_BURST must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
