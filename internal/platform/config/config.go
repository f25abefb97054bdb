package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is resolved in three layers: defaults, the YAML file, then
// READINGLIST_* environment variables.
type Config struct {
	DataDir   string `yaml:"data_dir"   env:"DATA_DIR"`
	DBDriver  string `yaml:"db_driver"  env:"DB_DRIVER"`
	DSN       string `yaml:"dsn"        env:"DSN"`
	LogLevel  string `yaml:"log_level"  env:"LOG_LEVEL"`
	LogFile   string `yaml:"log_file"   env:"LOG_FILE"`
	CacheSize int    `yaml:"cache_size" env:"CACHE_SIZE"`
}

// Load builds the configuration for dataDir. configPath may be empty, in which
// case <dataDir>/config.yaml is read when present.
func Load(dataDir, configPath string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:   dataDir,
		DBDriver:  DriverSQLite,
		LogLevel:  "info",
		CacheSize: 256,
	}

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(dataDir, "config.yaml")
	}
	raw, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "READINGLIST_"}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DSN == "" && cfg.DBDriver == DriverSQLite {
		cfg.DSN = filepath.Join(cfg.DataDir, "readinglist.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "readinglist.log")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("dsn is required for driver %s", c.DBDriver)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache size must be positive")
	}
	return nil
}
