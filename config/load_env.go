package config

import (
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
)

const DEFAULT_ENV = "dev"

// ResolveEnv picks the environment name from the flag value, then APP_ENV,
// then DEFAULT_ENV.
func ResolveEnv(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return DEFAULT_ENV
}

func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
