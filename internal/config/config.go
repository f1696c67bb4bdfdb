package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig configures the optional Postgres workout history.
// When disabled, the server only calculates.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix FITTRACKER_ and underscore-separated paths:
//
//	FITTRACKER_SERVER_HOST, FITTRACKER_SERVER_PORT,
//	FITTRACKER_DB_ENABLED, FITTRACKER_DB_HOST, FITTRACKER_DB_PORT, FITTRACKER_DB_NAME,
//	FITTRACKER_DB_USER, FITTRACKER_DB_PASSWORD, FITTRACKER_DB_SSLMODE,
//	FITTRACKER_AUTH_API_KEY,
//	FITTRACKER_TAILSCALE_ENABLED, FITTRACKER_TAILSCALE_HOSTNAME, FITTRACKER_TAILSCALE_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Host, "FITTRACKER_SERVER_HOST")
	setInt(&cfg.Server.Port, "FITTRACKER_SERVER_PORT")

	setBool(&cfg.Database.Enabled, "FITTRACKER_DB_ENABLED")
	setString(&cfg.Database.Host, "FITTRACKER_DB_HOST")
	setInt(&cfg.Database.Port, "FITTRACKER_DB_PORT")
	setString(&cfg.Database.Name, "FITTRACKER_DB_NAME")
	setString(&cfg.Database.User, "FITTRACKER_DB_USER")
	setString(&cfg.Database.Password, "FITTRACKER_DB_PASSWORD")
	setString(&cfg.Database.SSLMode, "FITTRACKER_DB_SSLMODE")

	setString(&cfg.Auth.APIKey, "FITTRACKER_AUTH_API_KEY")

	setBool(&cfg.Tailscale.Enabled, "FITTRACKER_TAILSCALE_ENABLED")
	setString(&cfg.Tailscale.Hostname, "FITTRACKER_TAILSCALE_HOSTNAME")
	setString(&cfg.Tailscale.StateDir, "FITTRACKER_TAILSCALE_STATE_DIR")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setInt ignores values that do not parse.
func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
