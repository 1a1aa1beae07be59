// Package config loads escopo settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver db.Dialect `yaml:"driver"`
	Path   string     `yaml:"path"`
	DSN    string     `yaml:"dsn"`
}

type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Textfile, when set, receives the metrics registry in node-exporter
	// textfile format when the process exits.
	Textfile string `yaml:"textfile"`
}

type HierarchyConfig struct {
	UpdateMode domain.UpdateMode `yaml:"update_mode"`
}

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
}

// Dir returns the escopo home directory (~/.escopo, or ESCOPO_HOME).
func Dir() string {
	if v := os.Getenv("ESCOPO_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".escopo"
	}
	return filepath.Join(home, ".escopo")
}

// Default returns a Config with every field set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: db.SQLite,
			Path:   filepath.Join(Dir(), "escopo.db"),
		},
		Log:       LogConfig{Level: "info", Format: "console"},
		Hierarchy: HierarchyConfig{UpdateMode: domain.UpdateReplace},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path means <Dir()>/config.yaml, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(Dir(), "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.OverrideFromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OverrideFromEnv applies ESCOPO_* environment variables.
func (c *Config) OverrideFromEnv() {
	if v := os.Getenv("ESCOPO_DB_DRIVER"); v != "" {
		c.Database.Driver = db.Dialect(v)
	}
	if v := os.Getenv("ESCOPO_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("ESCOPO_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("ESCOPO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ESCOPO_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("ESCOPO_METRICS_TEXTFILE"); v != "" {
		c.Metrics.Textfile = v
	}
	if v := os.Getenv("ESCOPO_UPDATE_MODE"); v != "" {
		c.Hierarchy.UpdateMode = domain.UpdateMode(v)
	}
}

// Validate rejects unknown drivers, formats and update modes.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case db.SQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case db.Postgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q (expected sqlite|postgres)", c.Database.Driver)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log.format %q (expected console|json)", c.Log.Format)
	}
	switch c.Hierarchy.UpdateMode {
	case domain.UpdateReplace, domain.UpdateMerge:
	default:
		return fmt.Errorf("unknown hierarchy.update_mode %q (expected replace|merge)", c.Hierarchy.UpdateMode)
	}
	return nil
}

// DBOptions converts the database section into db.Options.
func (c Config) DBOptions() db.Options {
	return db.Options{Driver: c.Database.Driver, Path: c.Database.Path, DSN: c.Database.DSN}
}
