package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the bracketgen tool.
type Config struct {
	LogLevel     slog.Level
	LogFormat    string // "json" or "text"
	PrettyOutput bool
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file (useful for local development; its absence is not fatal).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     slog.LevelInfo,
		LogFormat:    "json",
		PrettyOutput: false,
	}

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		level, err := parseLogLevel(levelStr)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	if format := strings.ToLower(os.Getenv("LOG_FORMAT")); format != "" {
		if format != "json" && format != "text" {
			return nil, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got %q", format)
		}
		cfg.LogFormat = format
	}

	if pretty := os.Getenv("PRETTY_OUTPUT"); pretty != "" {
		cfg.PrettyOutput = pretty == "1" || strings.EqualFold(pretty, "true")
	}

	return cfg, nil
}

// NewLogger builds the application logger per the loaded configuration.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func parseLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q (expected debug, info, warn or error)", levelStr)
	}
}
