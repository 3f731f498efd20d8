// Package internal holds configuration and logger construction shared
// by the server entrypoint.
package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration, loaded from the environment with
// an optional .env file.
type Config struct {
	Env             string
	LogLevel        string
	Port            uint16
	OrderBackendURL string
	AllowedOrigins  []string
}

// NewConfig loads configuration. A .env file in the working directory or
// up to two parent directories is applied first; real environment
// variables win over it.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:             getEnv("ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnvPort("PORT", 3000),
		OrderBackendURL: strings.TrimSuffix(getEnv("ORDER_BACKEND_URL", "http://localhost:8000"), "/"),
		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001")),
	}

	if cfg.Env != "dev" && cfg.Env != "prod" {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPort(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var port uint16
		if _, err := fmt.Sscanf(value, "%d", &port); err == nil {
			return port
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
