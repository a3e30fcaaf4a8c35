// Package config loads settings from the environment and an optional .env
// file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	Addr      string
	ServerURL string
	LogLevel  string
	CacheTTL  time.Duration
	Debug     bool

	// ServerFromEnv is set when HUVUDBOK_SERVER came from the environment
	// or the .env file rather than the default.
	ServerFromEnv bool
}

// Load reads the configuration. When envPath is given that file must
// exist; otherwise a .env in the working directory is used if present.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	ttl, err := parseDurationEnv("HUVUDBOK_CACHE_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid HUVUDBOK_CACHE_TTL: %w", err)
	}
	debug, err := parseBoolEnv("HUVUDBOK_DEBUG", false)
	if err != nil {
		return nil, fmt.Errorf("invalid HUVUDBOK_DEBUG: %w", err)
	}

	return &Config{
		DBPath:    getEnvOrDefault("HUVUDBOK_DB", "huvudbok.db"),
		Addr:      getEnvOrDefault("HUVUDBOK_ADDR", ":8888"),
		ServerURL: getEnvOrDefault("HUVUDBOK_SERVER", "http://localhost:8888"),
		LogLevel:  getEnvOrDefault("HUVUDBOK_LOG_LEVEL", "info"),
		CacheTTL:  ttl,
		Debug:     debug,

		ServerFromEnv: os.Getenv("HUVUDBOK_SERVER") != "",
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(v)
}
