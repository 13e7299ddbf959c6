// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New() returns a Config populated with defaults.
//   - Load(ctx) layers a YAML file and the environment on top of New().
//   - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFile switches logging to a rotated JSON file when set.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb" validate:"gte=0"`
	LogMaxBackups int    `koanf:"log_max_backups" validate:"gte=0"`
	LogMaxAgeDays int    `koanf:"log_max_age_days" validate:"gte=0"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PublicBaseURL is the externally visible origin, used for local media URLs.
	PublicBaseURL string `koanf:"public_base_url" validate:"required,url"`

	// AdminTokens are accepted as Bearer tokens on admin routes. Empty disables them.
	// An entry may be a bcrypt hash; in a .env file hashes must be single-quoted.
	AdminTokens []string `koanf:"admin_tokens"`

	// Timezone is the IANA zone event dates and times are written in.
	Timezone string `koanf:"timezone" validate:"required"`

	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// StatusRefreshInterval controls how often upcoming events are re-checked.
	StatusRefreshInterval time.Duration `koanf:"status_refresh_interval" validate:"gte=0"`

	Database Database `koanf:"database"`
	Storage  Storage  `koanf:"storage"`
	Jobs     Jobs     `koanf:"jobs"`
	Feedback Feedback `koanf:"feedback"`
	Notify   Notify   `koanf:"notify"`
}

// Database selects and tunes the SQL backend.
type Database struct {
	Driver       string `koanf:"driver" validate:"oneof=postgres sqlite"`
	DSN          string `koanf:"dsn" validate:"required"`
	Migrate      bool   `koanf:"migrate"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"gte=0"`
}

// Storage selects where uploaded images live.
type Storage struct {
	Backend        string `koanf:"backend" validate:"oneof=local supabase"`
	LocalDir       string `koanf:"local_dir" validate:"required_if=Backend local"`
	SupabaseURL    string `koanf:"supabase_url" validate:"required_if=Backend supabase"`
	SupabaseKey    string `koanf:"supabase_key" validate:"required_if=Backend supabase"`
	Bucket         string `koanf:"bucket" validate:"required"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes" validate:"gt=0"`
}

// Jobs sizes the background job queue.
type Jobs struct {
	QueueSize   int `koanf:"queue_size" validate:"gt=0"`
	WorkerCount int `koanf:"worker_count" validate:"gt=0"`
}

// Feedback tunes public feedback intake.
type Feedback struct {
	DedupeSize int `koanf:"dedupe_size" validate:"gt=0"`
}

// Notify configures outgoing notifications.
type Notify struct {
	DiscordWebhookURL string `koanf:"discord_webhook_url" validate:"omitempty,url"`
	Locale            string `koanf:"locale"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogMaxSizeMB:          50,
		LogMaxBackups:         3,
		LogMaxAgeDays:         28,
		Addr:                  ":8080",
		PublicBaseURL:         "http://localhost:8080",
		Timezone:              "UTC",
		CORSAllowedOrigins:    []string{"*"},
		StatusRefreshInterval: time.Minute,
		Database: Database{
			Driver:       "sqlite",
			DSN:          "file:nexus.db?_foreign_keys=on",
			Migrate:      true,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Storage: Storage{
			Backend:        "local",
			LocalDir:       "./uploads",
			Bucket:         "event-images",
			MaxUploadBytes: 10 << 20,
		},
		Jobs: Jobs{
			QueueSize:   1024,
			WorkerCount: 4,
		},
		Feedback: Feedback{
			DedupeSize: 10_000,
		},
		Notify: Notify{
			Locale: "en",
		},
	}
}

// Location resolves Timezone, falling back to UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AdminEnabled reports whether any admin token is configured.
func (c *Config) AdminEnabled() bool {
	for _, t := range c.AdminTokens {
		if t != "" {
			return true
		}
	}
	return false
}
