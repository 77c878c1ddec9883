// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// ErrNoChannelCredentials is returned by Validate when the bot cannot
// authenticate against the messaging API.
var ErrNoChannelCredentials = errors.New("CHANNEL_ACCESS_TOKEN or CHANNEL_ID and CHANNEL_SECRET must be set")

// Config is the process configuration, read from environment variables.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// Storage; empty selects the in-memory store.
	DatabaseURL string `env:"DATABASE_URL"`

	// Messaging API
	ChannelAccessToken string        `env:"CHANNEL_ACCESS_TOKEN"`
	ChannelID          string        `env:"CHANNEL_ID"`
	ChannelSecret      string        `env:"CHANNEL_SECRET"`
	LineAPIBaseURL     string        `env:"LINE_API_BASE_URL" envDefault:"https://api.line.me"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// Recorded-weight events (optional)
	RabbitMQURL   string `env:"RABBITMQ_URL"`
	RabbitMQQueue string `env:"RABBITMQ_QUEUE" envDefault:"weight_records"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports configuration the service cannot run with.
func (c *Config) Validate() error {
	if c.ChannelAccessToken == "" && (c.ChannelID == "" || c.ChannelSecret == "") {
		return ErrNoChannelCredentials
	}
	return nil
}
