package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aevon-lab/salary-crossfilter/internal/core/panel"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SALARYD_"

// Dataset sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config represents the top-level application config plus resolved panel definitions.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Database DatabaseConfig `koanf:"database"`
	Panels   PanelsConfig   `koanf:"panels"`
	Sessions SessionsConfig `koanf:"sessions"`
	Log      LogConfig      `koanf:"log"`

	// PanelLoading is populated by Load after parsing panel files.
	PanelLoading PanelLoadingConfig `koanf:"-"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeKB int    `koanf:"max_body_size_kb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatasetConfig struct {
	Source  string `koanf:"source"` // csv | postgres
	CSVPath string `koanf:"csv_path"`
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type PanelsConfig struct {
	ConfigDir string `koanf:"config_dir"` // empty or missing dir uses the built-in panels
}

type SessionsConfig struct {
	Capacity int `koanf:"capacity"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

type PanelLoadingConfig struct {
	Source     string
	Panels     []panel.Panel
	Repository panel.Repository
}

// SlogLevel maps the configured level onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// UsesDatabase reports whether startup needs a Postgres connection.
func (c *Config) UsesDatabase() bool {
	return c.Dataset.Source == SourcePostgres
}

// CheckDataset verifies the csv dataset is readable. Seeding reads its own
// file, so only serving calls it.
func (c *Config) CheckDataset() error {
	if c.UsesDatabase() {
		return nil
	}
	if strings.TrimSpace(c.Dataset.CSVPath) == "" {
		return fmt.Errorf("dataset.csv_path is required for the csv source")
	}
	if _, err := os.Stat(c.Dataset.CSVPath); err != nil {
		return fmt.Errorf("dataset.csv_path %q is not accessible: %w", c.Dataset.CSVPath, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeKB <= 0 {
		return fmt.Errorf("server.max_body_size_kb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Dataset.Source {
	case SourceCSV:
	case SourcePostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres source")
		}
	default:
		return fmt.Errorf("unsupported dataset.source %q (must be csv or postgres)", c.Dataset.Source)
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	if c.Sessions.Capacity <= 0 {
		return fmt.Errorf("sessions.capacity must be > 0")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}

	return nil
}

// Load parses config from file + env, validates it, then loads and validates panel definitions.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.max_body_size_kb": 16,
		"server.mode":             "release",
		"dataset.source":          SourceCSV,
		"dataset.csv_path":        "./data/salaries.csv",
		"database.dsn":            "",
		"database.max_open_conns": 10,
		"database.max_idle_conns": 5,
		"database.auto_migrate":   true,
		"panels.config_dir":       "",
		"sessions.capacity":       256,
		"log.level":               "info",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := panel.NewFileSystemRepository(cfg.Panels.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load panel definitions: %w", err)
	}
	panels := repo.Panels()
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panel definitions found in %q", repo.Source())
	}

	cfg.PanelLoading = PanelLoadingConfig{
		Source:     repo.Source(),
		Panels:     panels,
		Repository: repo,
	}

	return &cfg, nil
}
