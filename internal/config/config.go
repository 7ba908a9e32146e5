package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/reminder"
	"github.com/julianstephens/fitbot/internal/utils"
)

// Config is resolved from FITBOT_-prefixed environment variables. Flags on
// the CLI override the fields they shadow.
type Config struct {
	Debug    bool   `envconfig:"DEBUG" default:"false"`
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	// Storage: a postgres connection string wins over the sqlite path.
	StorePath   string `envconfig:"STORE_PATH" default:"~/.config/fitbot/fitbot.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// AllowedIDs is the authorization allow-list; empty admits everyone.
	AllowedIDs []int64 `envconfig:"ALLOWED_IDS"`

	// Reminder schedule
	DailyReminderTime string `envconfig:"DAILY_REMINDER_TIME" default:"19:00"`
	HourlyStart       int    `envconfig:"HOURLY_START" default:"7"`
	HourlyEnd         int    `envconfig:"HOURLY_END" default:"23"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(constants.AppName, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := utils.ParseTime(c.DailyReminderTime); err != nil {
		return fmt.Errorf("invalid daily reminder time %q (expected HH:MM): %w", c.DailyReminderTime, err)
	}
	if c.HourlyStart < 0 || c.HourlyEnd > 23 || c.HourlyStart > c.HourlyEnd {
		return fmt.Errorf("invalid hourly reminder range %d-%d", c.HourlyStart, c.HourlyEnd)
	}
	return nil
}

// SchedulerConfig derives the reminder schedule from the validated config.
func (c *Config) SchedulerConfig() (reminder.Config, error) {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return reminder.Config{}, err
	}
	t, err := utils.ParseTime(c.DailyReminderTime)
	if err != nil {
		return reminder.Config{}, err
	}
	return reminder.Config{
		DailyHour:   t.Hour(),
		DailyMinute: t.Minute(),
		HourlyStart: c.HourlyStart,
		HourlyEnd:   c.HourlyEnd,
		Location:    loc,
	}, nil
}
