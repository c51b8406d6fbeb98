package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in the config file.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config is the application configuration, loaded from a YAML file with
// defaults applied for anything missing.
type Config struct {
	Backend      string `yaml:"backend"`
	DatabasePath string `yaml:"database_path"`
	// PostgresDSN must not embed a password; it is fetched from the env or
	// the OS keyring at connect time.
	PostgresDSN string `yaml:"postgres_dsn"`
	Timezone    string `yaml:"timezone"`
	UserID      string `yaml:"user_id"`
	Debug       bool   `yaml:"debug"`
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultConfig().DatabasePath
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.UserID == "" {
		cfg.UserID = "local"
	}

	return &cfg, nil
}

// Save writes the config back to path, creating parent directories.
func (c *Config) Save(path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Location resolves the configured timezone, defaulting to the system local
// zone for "Local", empty or unknown names.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func defaultConfig() *Config {
	return &Config{
		Backend:      BackendSQLite,
		DatabasePath: "~/.config/rhythm/rhythm.db",
		Timezone:     "Local",
		UserID:       "local",
	}
}
