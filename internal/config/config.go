// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/folio/backend/internal/repository"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the API server configuration.
type Config struct {
	Port            int           `envconfig:"PORT" default:"5000"`
	StoreDriver     string        `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	BadgerPath      string        `envconfig:"BADGER_PATH" default:"./data/contacts"`
	DynamoTable     string        `envconfig:"DYNAMODB_TABLE" default:"contact_submissions"`
	ClientURL       string        `envconfig:"CLIENT_URL" default:"http://localhost:5173"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"INFO"`
	SubmitRateLimit int           `envconfig:"SUBMIT_RATE_LIMIT" default:"10"`
	TrustedProxies  int           `envconfig:"TRUSTED_PROXIES" default:"1"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	switch c.StoreDriver {
	case repository.DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres store")
		}
	case repository.DriverBadger, repository.DriverDynamoDB:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SubmitRateLimit < 0 {
		return errors.New("config: SUBMIT_RATE_LIMIT must not be negative")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// StoreOptions selects the record store.
func (c Config) StoreOptions() repository.Options {
	return repository.Options{
		Driver:      c.StoreDriver,
		DatabaseURL: c.DatabaseURL,
		BadgerPath:  c.BadgerPath,
		DynamoTable: c.DynamoTable,
	}
}

// ClientConfig configures the terminal contact client.
type ClientConfig struct {
	APIURL   string        `envconfig:"CONTACT_API_URL" default:"http://localhost:5000/api"`
	Timeout  time.Duration `envconfig:"CONTACT_TIMEOUT" default:"15s"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"WARN"`
}

// LoadClient reads an optional .env file and then the environment.
func LoadClient() (ClientConfig, error) {
	_ = godotenv.Load()

	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return ClientConfig{}, errors.New("config: CONTACT_TIMEOUT must be positive")
	}
	return cfg, nil
}
