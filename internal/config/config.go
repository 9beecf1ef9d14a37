package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Recency bounds how many duties a caretaker may hold in a window of
// neighbouring dates
type Recency struct {
	Radius int `yaml:"radius" validate:"min=0"`
	Limit  int `yaml:"limit" validate:"min=1"`
}

// Caretaker maps a display name (as used in calendar events) to a username
type Caretaker struct {
	Name     string `yaml:"name" validate:"required"`
	Username string `yaml:"username" validate:"required"`
}

// DayOverride reclassifies or closes the dates matched by an rrule
type DayOverride struct {
	RRule   string `yaml:"rrule" validate:"required"`
	DayType string `yaml:"dayType,omitempty" validate:"omitempty,oneof=Weekend Wednesday Weekday"`
	Closed  bool   `yaml:"closed,omitempty"`
}

// Config represents the application configuration
type Config struct {
	ResponsesSheetID     string        `yaml:"responsesSheetID"`
	ResponsesTab         string        `yaml:"responsesTab" validate:"required_with=ResponsesSheetID"`
	ScheduleSheetID      string        `yaml:"scheduleSheetID"`
	DatabaseURL          string        `yaml:"databaseURL" validate:"required"`
	CalendarID           string        `yaml:"calendarID,omitempty"`
	EmailDomain          string        `yaml:"emailDomain,omitempty" validate:"omitempty,fqdn"`
	PeriodStart          string        `yaml:"periodStart" validate:"required,datetime=2006-01-02"`
	GmailSender          string        `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	Recency              *Recency      `yaml:"recency,omitempty"`
	AllowMissingDayTypes bool          `yaml:"allowMissingDayTypes,omitempty"`
	Caretakers           []Caretaker   `yaml:"caretakers,omitempty" validate:"dive"`
	DayOverrides         []DayOverride `yaml:"dayOverrides,omitempty" validate:"dive"`
}

// StartDate returns PeriodStart as a time. Validate guarantees it parses.
func (c *Config) StartDate() time.Time {
	t, _ := time.Parse(dateLayout, c.PeriodStart)
	return t
}

// RecencyOrDefault returns the configured recency bounds or radius 3, limit 3
func (c *Config) RecencyOrDefault() Recency {
	if c.Recency == nil {
		return Recency{Radius: 3, Limit: 3}
	}
	return *c.Recency
}

// CaretakerUsernames maps display names to usernames
func (c *Config) CaretakerUsernames() map[string]string {
	names := make(map[string]string, len(c.Caretakers))
	for _, ct := range c.Caretakers {
		names[ct.Name] = ct.Username
	}
	return names
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from duty_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads duty_config.<env>.yaml, or duty_config.yaml when env is empty.
// It looks in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.DayOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in dayOverrides[%d]: %w", i, err)
		}
		if override.DayType == "" && !override.Closed {
			return fmt.Errorf("dayOverrides[%d] must set dayType or closed", i)
		}
	}

	seen := make(map[string]bool, len(cfg.Caretakers))
	for _, ct := range cfg.Caretakers {
		if seen[ct.Name] {
			return fmt.Errorf("duplicate caretaker name %q", ct.Name)
		}
		seen[ct.Name] = true
	}

	return nil
}

// findConfigFile searches for the config file in the current directory and home directory
func findConfigFile(env string) (string, error) {
	return locate(envFileName("duty_config", env, "yaml"))
}

// envFileName builds "<base>.<env>.<ext>", or "<base>.<ext>" when env is empty
func envFileName(base, env, ext string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// locate returns the first of ./name and ~/name that exists
func locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
