// Package config loads server configuration from the environment and an
// optional postcard.yaml file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

// Config carries the runtime configuration of the server
type Config struct {
	// Addr is the listen address of the HTTP server
	Addr string
	// Driver selects the storage backend: badger or postgres
	Driver string
	// DBPath is the Badger database directory (badger driver)
	DBPath string
	// DatabaseDSN is the PostgreSQL connection string (postgres driver)
	DatabaseDSN string
	// CacheTTL is how long the cached home feed stays fresh
	CacheTTL time.Duration
	// SessionSecret signs session cookies
	SessionSecret string
}

// Load reads configuration from POSTCARD_* environment variables and an
// optional postcard.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("driver", DriverBadger)
	v.SetDefault("db_path", "data/badger")
	v.SetDefault("database_dsn", "")
	v.SetDefault("cache_ttl", 20*time.Second)
	v.SetDefault("session_secret", "postcard-dev-secret")

	v.SetConfigName("postcard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("postcard")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Addr:          v.GetString("addr"),
		Driver:        v.GetString("driver"),
		DBPath:        v.GetString("db_path"),
		DatabaseDSN:   v.GetString("database_dsn"),
		CacheTTL:      v.GetDuration("cache_ttl"),
		SessionSecret: v.GetString("session_secret"),
	}

	if cfg.Driver != DriverBadger && cfg.Driver != DriverPostgres {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if cfg.Driver == DriverPostgres && cfg.DatabaseDSN == "" {
		return nil, errors.New("database_dsn is required with the postgres driver")
	}
	if cfg.CacheTTL <= 0 {
		return nil, errors.New("cache_ttl must be positive")
	}

	return cfg, nil
}
