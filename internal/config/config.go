package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DatabaseURL string
	RedisURL    string
	Env         string
	Port        string
	LogLevel    string
	LogFormat   string

	// Chat gateway webhook used for all outbound notifications
	GatewayWebhookURL    string
	GatewayWebhookSecret string
	GatewayStubMode      bool

	// Adapter-layer options; all optional
	AdminRoleID           string
	DailyChannelID        string
	DailyReminderTime     string
	TimeTrackingChannelID string
	ChangelogChannelID    string
	SupportUserID         string
	APIToken              string

	// Directory holding one <version>.yaml release definition per release
	ChangelogDir string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnvWithDefault("REDIS_URL", "redis://localhost:6379/0"),
		Env:         getEnvWithDefault("ENV", "development"),
		Port:        getEnvWithDefault("PORT", "8080"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvWithDefault("LOG_FORMAT", "text"),

		GatewayWebhookURL:    os.Getenv("GATEWAY_WEBHOOK_URL"),
		GatewayWebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),
		GatewayStubMode:      os.Getenv("GATEWAY_STUB_MODE") == "true",

		AdminRoleID:           os.Getenv("ADMIN_ROLE_ID"),
		DailyChannelID:        os.Getenv("DAILY_CHANNEL_ID"),
		DailyReminderTime:     getEnvWithDefault("DAILY_REMINDER_TIME", "10:00"),
		TimeTrackingChannelID: os.Getenv("TIME_TRACKING_CHANNEL_ID"),
		ChangelogChannelID:    os.Getenv("CHANGELOG_CHANNEL_ID"),
		SupportUserID:         os.Getenv("SUPPORT_USER_ID"),
		APIToken:              os.Getenv("API_TOKEN"),

		ChangelogDir: getEnvWithDefault("CHANGELOG_DIR", "changelogs"),
	}

	return cfg
}

// ReminderTime parses DAILY_REMINDER_TIME (HH:MM, organizational timezone).
// A malformed value falls back to the 10:00 default with a warning so a bad
// deploy never silences reminders entirely.
func (c *Config) ReminderTime() (hour, minute int) {
	hour, minute, err := ParseClockTime(c.DailyReminderTime)
	if err != nil {
		log.Printf("WARNING: invalid DAILY_REMINDER_TIME %q, using default 10:00: %v", c.DailyReminderTime, err)
		return 10, 0
	}
	return hour, minute
}

// ParseClockTime parses an HH:MM string into its components. The whole
// string must be a valid clock time; trailing garbage is rejected.
func ParseClockTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
