// Package config provides application configuration from environment variables
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "http://api.aviationstack.com/v1/"

// AppConfig holds all application configuration
type AppConfig struct {
	APIKey   string
	BaseURL  string
	Port     int
	UseMock  bool
	LogLevel string
	GinMode  string
	// WarmCache preloads the country list when the server starts.
	WarmCache bool
	Upstream  UpstreamConfig
	// EnvFileErr is set when a .env file exists but could not be read. It is
	// left for the caller to log once logging is configured.
	EnvFileErr error
}

// UpstreamConfig bounds calls to the flight data provider
type UpstreamConfig struct {
	Timeout time.Duration
	// RatePerSec caps outgoing requests; it never retries.
	RatePerSec float64
}

// LoadConfig loads configuration from an optional .env file and the environment.
// Variables already set in the environment win over the file.
func LoadConfig() *AppConfig {
	envFileErr := godotenv.Load()
	if errors.Is(envFileErr, fs.ErrNotExist) {
		envFileErr = nil
	}

	return &AppConfig{
		APIKey:    os.Getenv("API_KEY"),
		BaseURL:   getEnv("AVIATION_BASE_URL", DefaultBaseURL),
		Port:      getEnvInt("PORT", 5000),
		UseMock:   getEnvBool("USE_MOCK", true),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		GinMode:   getEnv("GIN_MODE", "release"),
		WarmCache: getEnvBool("WARM_CACHE", true),
		Upstream: UpstreamConfig{
			Timeout:    getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			RatePerSec: getEnvFloat("UPSTREAM_RATE", 5),
		},
		EnvFileErr: envFileErr,
	}
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("10s") or a bare number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
