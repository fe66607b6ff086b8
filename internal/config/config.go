package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the launchpad draft service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
	// PublicEnvKeys are the environment variables exposed by GET /api/env.
	PublicEnvKeys []string `yaml:"public_env_keys"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // sqlite, postgres
	Path        string `yaml:"path"`
	PostgresURL string `yaml:"postgres_url"`
}

type AuthConfig struct {
	// JWTSecret enables HS256 bearer auth on /api when set.
	JWTSecret string `yaml:"jwt_secret"`
	Audience  string `yaml:"audience"`
	// AuthorizationServers are advertised in the protected resource metadata.
	AuthorizationServers []string `yaml:"authorization_servers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the configuration used when no file or env var says otherwise.
func Default() Config {
	dbPath := "launchpad-drafts.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, "launchpad-drafts.db")
	}
	return Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Driver: DriverSqlite,
			Path:   dbPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("PUBLIC_ENV_KEYS"); v != "" {
		c.Server.PublicEnvKeys = splitList(v)
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		c.Database.PostgresURL = v
		// A postgres url without an explicit driver means postgres.
		if os.Getenv("DB_DRIVER") == "" {
			c.Database.Driver = DriverPostgres
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		c.Auth.Audience = v
	}
	if v := os.Getenv("OAUTH_AUTHORIZATION_SERVERS"); v != "" {
		c.Auth.AuthorizationServers = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSqlite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("database.postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
