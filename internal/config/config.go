// Package config loads the assistant's YAML configuration: scheduling
// constraints, working window, fallback recipients, LLM provider,
// snapshot refresh and metrics.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"calassist/internal/schedule"
)

// SchedulingConfig holds the availability-engine settings.
type SchedulingConfig struct {
	// WorkingDays are lowercase English weekday names.
	WorkingDays []string `yaml:"working_days"`
	// DayStart and DayEnd bound the working window, "HH:MM".
	DayStart string `yaml:"day_start"`
	DayEnd   string `yaml:"day_end"`
	// MinDurationMinutes and MaxDurationMinutes clamp meeting lengths.
	MinDurationMinutes int `yaml:"min_duration_minutes"`
	MaxDurationMinutes int `yaml:"max_duration_minutes"`
}

// EmailConfig holds the recipient-resolution settings.
type EmailConfig struct {
	// FallbackRecipients are used when no recipients can be resolved.
	FallbackRecipients []string `yaml:"fallback_recipients"`
}

// LLMConfig selects the model backend for the chat command.
type LLMConfig struct {
	// Model is the model identifier, e.g. "gpt-4o-mini".
	Model string `yaml:"model"`
	// BaseURL points at any OpenAI-compatible endpoint. Empty means the
	// default endpoint.
	BaseURL string `yaml:"base_url"`
}

// MetricsConfig controls the serve command's metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA timezone scheduling happens in.
	Timezone string `yaml:"timezone"`

	// Account selects which stored Google token to use. Empty means the
	// default account.
	Account string `yaml:"account"`

	// RefreshCron schedules snapshot refreshes, e.g. "@every 15m" or a
	// five-field cron expression.
	RefreshCron string `yaml:"refresh"`

	// HorizonDays is how far ahead refreshes fetch events.
	HorizonDays int `yaml:"horizon_days"`

	Scheduling SchedulingConfig `yaml:"scheduling"`
	Email      EmailConfig      `yaml:"email"`
	LLM        LLMConfig        `yaml:"llm"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:    "Local",
		RefreshCron: "@every 15m",
		HorizonDays: 30,
		Scheduling: SchedulingConfig{
			WorkingDays:        []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart:           "09:00",
			DayEnd:             "17:00",
			MinDurationMinutes: 15,
			MaxDurationMinutes: 480,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9464",
		},
	}
}

// Normalize fills in missing values so partially-filled configs still
// behave.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = def.HorizonDays
	}
	if len(c.Scheduling.WorkingDays) == 0 {
		c.Scheduling.WorkingDays = def.Scheduling.WorkingDays
	}
	if c.Scheduling.DayStart == "" {
		c.Scheduling.DayStart = def.Scheduling.DayStart
	}
	if c.Scheduling.DayEnd == "" {
		c.Scheduling.DayEnd = def.Scheduling.DayEnd
	}
	if c.Scheduling.MinDurationMinutes <= 0 {
		c.Scheduling.MinDurationMinutes = def.Scheduling.MinDurationMinutes
	}
	if c.Scheduling.MaxDurationMinutes <= 0 {
		c.Scheduling.MaxDurationMinutes = def.Scheduling.MaxDurationMinutes
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = def.Metrics.Listen
	}
}

// Load loads configuration from the given YAML path. A missing file
// yields the defaults, written back with 0600 permissions so the user
// has something to edit.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration to the given path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// DefaultPath is the per-user config location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "calassist", "config.yaml")
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "Local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Constraints converts the scheduling section into the engine's
// constraint set.
func (c *Config) Constraints() (schedule.Constraints, error) {
	loc, err := c.Location()
	if err != nil {
		return schedule.Constraints{}, err
	}

	days := map[time.Weekday]bool{}
	for _, name := range c.Scheduling.WorkingDays {
		day, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return schedule.Constraints{}, fmt.Errorf("unknown working day %q", name)
		}
		days[day] = true
	}

	return schedule.Constraints{
		MinDuration: time.Duration(c.Scheduling.MinDurationMinutes) * time.Minute,
		MaxDuration: time.Duration(c.Scheduling.MaxDurationMinutes) * time.Minute,
		WorkingDays: days,
		Location:    loc,
	}, nil
}

// Window converts the day_start/day_end pair into the slot-search
// working window.
func (c *Config) Window() (schedule.Window, error) {
	startHour, startMinute, err := parseClock(c.Scheduling.DayStart)
	if err != nil {
		return schedule.Window{}, fmt.Errorf("day_start: %w", err)
	}
	endHour, endMinute, err := parseClock(c.Scheduling.DayEnd)
	if err != nil {
		return schedule.Window{}, fmt.Errorf("day_end: %w", err)
	}
	return schedule.Window{
		StartHour:   startHour,
		StartMinute: startMinute,
		EndHour:     endHour,
		EndMinute:   endMinute,
	}, nil
}

func parseClock(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("out of range clock time %q", s)
	}
	return hour, minute, nil
}
