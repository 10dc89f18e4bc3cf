package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"8000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// MongoConfig holds document-store configuration.
// WARNING: the default URI is for local development only. In production,
// always set DATABASE_URL via environment variable.
type MongoConfig struct {
	URI        string `envconfig:"DATABASE_URL" default:"mongodb://localhost:27017"`
	Name       string `envconfig:"DATABASE_NAME" default:"coupons"`
	MaxRetries int    `envconfig:"DATABASE_MAX_RETRIES" default:"5"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
