// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	Username      string        `env:"MG_USERNAME" validate:"required"`
	Password      string        `env:"MG_PASSWORD" validate:"required"`
	Port          string        `env:"PORT" envDefault:"8999" validate:"required,numeric"`
	APIURL        string        `env:"MG_API_URL" envDefault:"http://version1.api.memegenerator.net" validate:"required,url"`
	Timeout       time.Duration `env:"MG_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	MockAPI       bool          `env:"MG_MOCK_API" envDefault:"false"`
	SigningSecret string        `env:"SLACK_SIGNING_SECRET"`
	OTLPEndpoint  string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName   string        `env:"OTEL_SERVICE_NAME" envDefault:"memerelay"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
