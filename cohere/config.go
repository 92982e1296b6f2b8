package cohere

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	// DefaultEndpoint is the Cohere chat endpoint
	DefaultEndpoint = "https://api.cohere.ai/v1/chat"
	// DefaultModel is the model identifier sent with every request
	DefaultModel = "command-r-08-2024"
	// DefaultTemperature is the sampling temperature sent with every request
	DefaultTemperature = 0.8

	// APIKeyEnv is the environment variable holding the bearer credential
	APIKeyEnv = "COHERE_API_KEY"
)

// Config holds the values a Generator is constructed with.
// It is copied into the Generator and never mutated afterwards.
type Config struct {
	// APIKey is sent as "Authorization: Bearer <APIKey>". It is not validated locally.
	APIKey   string
	Endpoint string
	Model    string
	// Temperature overrides DefaultTemperature when non-nil. Zero is a valid value.
	Temperature *float64
}

// DefaultConfig returns a Config with the fixed wire constants and no credential
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
	}
}

// ConfigFromEnv returns DefaultConfig with APIKey read from COHERE_API_KEY.
// An unset variable yields an empty key; the remote service rejects it.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv(APIKeyEnv)
	return cfg
}

// LoadEnv loads environment variables from the given .env files (".env" when none
// are given). Missing files are ignored; variables already set are not overridden.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	t := DefaultTemperature
	if c.Temperature != nil {
		t = *c.Temperature
	}
	c.Temperature = &t
	return c
}
