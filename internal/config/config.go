package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// DataConfig contains the file store settings
type DataConfig struct {
	Dir string `yaml:"dir"` // directory holding the JSON store files
}

// AuthConfig contains the bootstrap credentials for the reserved admin user
type AuthConfig struct {
	DefaultAdminUsername string `yaml:"default_admin_username"`
	DefaultAdminPassword string `yaml:"default_admin_password"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron specs for the maintenance jobs
type SchedulerConfig struct {
	ReportOverdueRentals string `yaml:"report_overdue_rentals"`
	BackupStores         string `yaml:"backup_stores"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("AUTOFACIL_DATA_DIR"); val != "" {
		c.Data.Dir = val
	}
	if val := os.Getenv("AUTOFACIL_ADMIN_USERNAME"); val != "" {
		c.Auth.DefaultAdminUsername = val
	}
	if val := os.Getenv("AUTOFACIL_ADMIN_PASSWORD"); val != "" {
		c.Auth.DefaultAdminPassword = val
	}
	if val := os.Getenv("AUTOFACIL_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("AUTOFACIL_LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks required fields and fills in defaults
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Auth.DefaultAdminUsername == "" {
		c.Auth.DefaultAdminUsername = "admin"
	}
	if c.Auth.DefaultAdminPassword == "" {
		c.Auth.DefaultAdminPassword = "admin"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduler.ReportOverdueRentals == "" {
		// 03:00 UTC daily (six-field spec, seconds first)
		c.Scheduler.ReportOverdueRentals = "0 0 3 * * *"
	}
	if c.Scheduler.BackupStores == "" {
		c.Scheduler.BackupStores = "0 30 3 * * *"
	}
	return nil
}
