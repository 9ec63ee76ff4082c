package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the assistant service
type Config struct {
	Port          string
	PatternsFile  string
	Threshold     float64
	WatchPatterns bool
	LogLevel      string
}

var errThresholdRange = errors.New("threshold must be greater than 0 and at most 1")

// LoadConfig reads settings from the environment, after loading any
// variables found in envFiles. Missing .env files are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:         getEnv("PORT", "8050"),
		PatternsFile: getEnv("PATTERNS_FILE", ""),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	threshold, err := strconv.ParseFloat(getEnv("MATCH_THRESHOLD", "0.5"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MATCH_THRESHOLD: %w", err)
	}
	cfg.Threshold = threshold

	watch, err := strconv.ParseBool(getEnv("WATCH_PATTERNS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid WATCH_PATTERNS: %w", err)
	}
	cfg.WatchPatterns = watch

	return cfg, cfg.Validate()
}

// Validate checks values that flags may have overridden
func (c Config) Validate() error {
	if err := validateThreshold(c.Threshold); err != nil {
		return err
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	return nil
}

func validateThreshold(t float64) error {
	if math.IsNaN(t) || t <= 0 || t > 1 {
		return fmt.Errorf("%w (got %v)", errThresholdRange, t)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
