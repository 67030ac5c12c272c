// Package config loads and finalizes the root configuration for tally.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/registrar-tools/tally/pkg/archive"
	"github.com/registrar-tools/tally/pkg/database"

	"github.com/registrar-tools/tally/internal/render"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTallyEnv     = "TALLY_ENV"
	EnvTallyVersion = "TALLY_VERSION"
)

var databaseEnv = &database.Env{
	Host:        "TALLY_DB_HOST",
	Port:        "TALLY_DB_PORT",
	Name:        "TALLY_DB_NAME",
	User:        "TALLY_DB_USER",
	Password:    "TALLY_DB_PASSWORD",
	SSLMode:     "TALLY_DB_SSL_MODE",
	ConnTimeout: "TALLY_DB_CONN_TIMEOUT",
}

var archiveEnv = &archive.Env{
	ContainerName:    "TALLY_ARCHIVE_CONTAINER_NAME",
	ConnectionString: "TALLY_ARCHIVE_CONNECTION_STRING",
}

// Config is the root configuration for the tally CLI.
type Config struct {
	Database database.Config `toml:"database"`
	Archive  archive.Config  `toml:"archive"`
	Report   render.Config   `toml:"report"`
	Audit    AuditConfig     `toml:"audit"`
	Version  string          `toml:"version"`
}

// Env returns the TALLY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTallyEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Archive.Merge(&overlay.Archive)
	c.Report.Merge(&overlay.Report)
	c.Audit.Merge(&overlay.Audit)
}

// Finalize applies defaults, environment variable overrides, and validation
// across all sub-configs.
func (c *Config) Finalize() error {
	if c.Version == "" {
		if v := os.Getenv(EnvTallyVersion); v != "" {
			c.Version = v
		} else {
			c.Version = "dev"
		}
	}

	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Archive.Finalize(archiveEnv); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if err := c.Report.Finalize(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := c.Audit.Finalize(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func overlayPath() string {
	env := os.Getenv(EnvTallyEnv)
	if env == "" {
		return ""
	}

	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}
