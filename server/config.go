package server

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config is the server's environment-driven configuration
type Config struct {
	Addr           string `env:"SJAUS_ADDR,default=:8000"`
	DatabaseURL    string `env:"DATABASE_URL"`
	AllowedOrigins string `env:"SJAUS_ALLOWED_ORIGINS,default=*"`
}

// LoadConfig reads configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
