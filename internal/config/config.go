// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lumina/internal/llm"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DBPath            string
	RedisURL          string
	MinContentLatency time.Duration
	LogFile           string
	LogLevel          slog.Level
	TotalDays         int
	LLM               llm.LLMConfig
}

// Load reads .env (when present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".lumina")

	level, err := parseLevel(getEnv("LUMINA_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:            getEnv("LUMINA_DB", filepath.Join(dataDir, "lumina.db")),
		RedisURL:          os.Getenv("LUMINA_REDIS_URL"),
		MinContentLatency: time.Duration(getEnvInt("LUMINA_MIN_CONTENT_LATENCY_MS", 3000)) * time.Millisecond,
		LogFile:           getEnv("LUMINA_LOG_FILE", filepath.Join(dataDir, "lumina.log")),
		LogLevel:          level,
		TotalDays:         getEnvInt("LUMINA_TOTAL_DAYS", 30),
		LLM:               llm.LoadConfig(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("LUMINA_DB cannot be empty")
	}
	if c.MinContentLatency < 0 {
		return fmt.Errorf("LUMINA_MIN_CONTENT_LATENCY_MS must be >= 0")
	}
	if c.TotalDays <= 0 {
		return fmt.Errorf("LUMINA_TOTAL_DAYS must be > 0")
	}
	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("LUMINA_REDIS_URL must use redis:// or rediss://")
	}
	if c.LLM.Enabled && c.LLM.Endpoint == "" {
		return fmt.Errorf("LUMINA_LLM_ENDPOINT cannot be empty when the LLM is enabled")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("LUMINA_LOG_LEVEL: %w", err)
	}
	return level, nil
}
