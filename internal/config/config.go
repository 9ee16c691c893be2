package config

import (
	"fmt"
	"os"
)

// Config holds process-wide settings. Database settings live with the
// db package, which reads its own environment.
type Config struct {
	Port string // server port (8080)

	JWTSecret string // access token signing secret

	GoEnv string // dev/prod
}

// Load reads the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
