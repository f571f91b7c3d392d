// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	RedisURL     string // optional; empty runs sessions on the in-memory fallback store
	FAQCSVPath   string
	ContactEmail string

	TelegramToken string // optional; empty disables operator forwarding
	AgentChatID   int64
	GeminiAPIKey  string // optional; empty degrades generation to the fallback answer
	GeminiModel   string

	MaxHistory    int
	SessionTTL    time.Duration
	ReplyQueueCap int
	CallTimeout   time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		RedisURL:      getEnv("REDIS_URL", ""),
		FAQCSVPath:    getEnv("FAQ_CSV_PATH", "./data/faqs.csv"),
		ContactEmail:  getEnv("CONTACT_EMAIL", "hello@notionhive.com"),
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		AgentChatID:   getEnvInt64("TELEGRAM_AGENT_CHAT_ID", 0),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		MaxHistory:    getEnvInt("MAX_HISTORY", 7),
		SessionTTL:    getEnvDuration("SESSION_TTL", 30*time.Minute),
		ReplyQueueCap: getEnvInt("REPLY_QUEUE_CAP", 50),
		CallTimeout:   getEnvDuration("EXTERNAL_CALL_TIMEOUT", 3*time.Second),
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
	if c.MaxHistory <= 0 {
		return fmt.Errorf("MAX_HISTORY must be > 0")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.ReplyQueueCap <= 0 {
		return fmt.Errorf("REPLY_QUEUE_CAP must be > 0")
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("EXTERNAL_CALL_TIMEOUT must be > 0")
	}
	if c.TelegramToken != "" && c.AgentChatID == 0 {
		return fmt.Errorf("TELEGRAM_AGENT_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
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

func getEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration accepts either a Go duration string ("30m") or a plain
// number of seconds ("1800").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
