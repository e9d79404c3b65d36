// Package config loads application settings from environment variables via
// envconfig. A .env file, if present, is read by main before Load runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings for the service.
type Config struct {
	ListenAddr     string `envconfig:"LISTEN_ADDR" default:":5200"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// AdminEmails is the comma-separated allow-list that grants elevated
	// privilege. It is consulted on every check, never stamped onto rows.
	AdminEmails string `envconfig:"ADMIN_EMAILS" required:"true"`

	// --- DigitalOcean Spaces (evidence + profile images) ---
	SpacesEndpoint string `envconfig:"SPACES_ENDPOINT" default:"ams3.digitaloceanspaces.com"`
	SpacesRegion   string `envconfig:"SPACES_REGION" default:"eu-central-1"`
	SpacesKey      string `envconfig:"SPACES_ACCESS_KEY_ID" required:"true"`
	SpacesSecret   string `envconfig:"SPACES_SECRET_ACCESS_KEY" required:"true"`
	SpacesBucket   string `envconfig:"SPACES_BUCKET" default:"bak-counter-images"`

	EvidenceMaxBytes     int64 `envconfig:"EVIDENCE_MAX_BYTES" default:"31457280"`
	ProfileImageMaxBytes int64 `envconfig:"PROFILE_IMAGE_MAX_BYTES" default:"10485760"`

	PageSize int `envconfig:"PAGE_SIZE" default:"5"`

	// Interval of the DB keep-alive ping job.
	KeepAliveInterval time.Duration `envconfig:"KEEP_ALIVE_INTERVAL" default:"30s"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AdminEmails) == "" {
		return fmt.Errorf("ADMIN_EMAILS must name at least one admin")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be > 0")
	}
	if c.EvidenceMaxBytes <= 0 || c.ProfileImageMaxBytes <= 0 {
		return fmt.Errorf("upload size limits must be > 0")
	}
	return nil
}

// IsAdminEmail reports whether the address is on the admin allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range strings.Split(c.AdminEmails, ",") {
		if strings.EqualFold(strings.TrimSpace(admin), strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}
