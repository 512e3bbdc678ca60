package bot

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/example/checkinbot/internal/i18n"
	"github.com/example/checkinbot/internal/scheduler"
)

// Config represents the configuration for the bot
type Config struct {
	// Telegram bot token
	Token string
	// Wall-clock time of the daily counter reset
	ResetHour   int
	ResetMinute int
	// Language used for new users
	DefaultLanguage string
	// Fixed set of supported locale tags
	SupportedLanguages []string
	// Users allowed to run /report and /reset
	AdminUserIDs map[int64]bool
	// Whether the daily reset job runs
	SchedulerEnabled bool
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		ResetHour:          15,
		ResetMinute:        0,
		DefaultLanguage:    i18n.DefaultLanguage,
		SupportedLanguages: i18n.Languages,
		AdminUserIDs:       make(map[int64]bool),
		SchedulerEnabled:   true,
	}
}

// ConfigFromEnv builds the configuration from environment variables on top
// of the defaults
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	cfg.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if value := os.Getenv("DAILY_RESET_TIME"); value != "" {
		hour, minute, err := scheduler.ParseTriggerTime(value)
		if err != nil {
			return nil, fmt.Errorf("DAILY_RESET_TIME: %v", err)
		}
		cfg.ResetHour = hour
		cfg.ResetMinute = minute
	}

	if lang := os.Getenv("DEFAULT_LANG"); lang != "" {
		supported := false
		for _, l := range cfg.SupportedLanguages {
			if l == lang {
				supported = true
				break
			}
		}
		if !supported {
			return nil, fmt.Errorf("DEFAULT_LANG %q is not a supported language", lang)
		}
		cfg.DefaultLanguage = lang
	}

	if ids := os.Getenv("ADMIN_USER_IDS"); ids != "" {
		for _, idStr := range strings.Split(ids, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid admin user ID: %s", idStr)
			}
			cfg.AdminUserIDs[id] = true
		}
	}

	cfg.SchedulerEnabled = os.Getenv("ENABLE_SCHEDULER") != "false"

	return cfg, nil
}
