package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	App     AppConfig
	Tracker TrackerConfig
	Stub    StubConfig
	Export  ExportConfig
}

// APIConfig holds the remote backend connection settings
type APIConfig struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

type SessionConfig struct {
	File string
}

// AppConfig holds application configuration
type AppConfig struct {
	Env       string
	LogLevel  string
	LogFormat string
	Version   string
}

// TrackerConfig drives the attendance board and background jobs
type TrackerConfig struct {
	Concurrency     int
	PingInterval    time.Duration
	RefreshInterval time.Duration
}

// StubConfig configures the in-memory stand-in backend (hrstub)
type StubConfig struct {
	Port             int
	JWTSecret        string
	AccessExpiration string
	AllowedOrigins   []string
}

type ExportConfig struct {
	Dir string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using environment only")
	}

	config := &Config{}

	apiTimeout, err := time.ParseDuration(getEnv("HRDASH_API_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRDASH_API_TIMEOUT: %w", err)
	}

	config.API = APIConfig{
		BaseURL: strings.TrimRight(getEnv("HRDASH_API_URL", "http://localhost:8080"), "/"),
		Timeout: apiTimeout,
	}

	config.Session = SessionConfig{
		File: getEnv("HRDASH_SESSION_FILE", defaultSessionFile()),
	}

	config.App = AppConfig{
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Version:   getEnv("APP_VERSION", "v1.0.0"),
	}

	// Tracker configuration
	concurrency, err := strconv.Atoi(getEnv("HRDASH_TRACK_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRDASH_TRACK_CONCURRENCY: %w", err)
	}
	pingInterval, err := time.ParseDuration(getEnv("HRDASH_PING_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRDASH_PING_INTERVAL: %w", err)
	}
	refreshInterval, err := time.ParseDuration(getEnv("HRDASH_REFRESH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRDASH_REFRESH_INTERVAL: %w", err)
	}

	config.Tracker = TrackerConfig{
		Concurrency:     concurrency,
		PingInterval:    pingInterval,
		RefreshInterval: refreshInterval,
	}

	// Stub backend configuration
	stubPort, err := strconv.Atoi(getEnv("STUB_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid STUB_PORT: %w", err)
	}

	config.Stub = StubConfig{
		Port:             stubPort,
		JWTSecret:        getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
		AllowedOrigins:   getEnvSlice("STUB_ALLOWED_ORIGINS"),
	}
	if len(config.Stub.AllowedOrigins) == 0 {
		config.Stub.AllowedOrigins = []string{"http://localhost:3000"}
	}

	config.Export = ExportConfig{
		Dir: getEnv("HRDASH_EXPORT_DIR", "."),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("HRDASH_API_URL must be an absolute URL")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("HRDASH_API_TIMEOUT must not be negative")
	}
	if c.Session.File == "" {
		return fmt.Errorf("HRDASH_SESSION_FILE is required")
	}
	if c.Tracker.Concurrency < 1 {
		return fmt.Errorf("HRDASH_TRACK_CONCURRENCY must be at least 1")
	}
	if c.Tracker.PingInterval <= 0 {
		return fmt.Errorf("HRDASH_PING_INTERVAL must be positive")
	}
	if c.Tracker.RefreshInterval <= 0 {
		return fmt.Errorf("HRDASH_REFRESH_INTERVAL must be positive")
	}
	if _, err := time.ParseDuration(c.Stub.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	switch c.App.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}

// ValidateStub checks the settings only hrstub needs
func (c *Config) ValidateStub() error {
	if c.Stub.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Stub.Port <= 0 || c.Stub.Port > 65535 {
		return fmt.Errorf("STUB_PORT is out of range")
	}
	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hrdash-session.json"
	}
	return filepath.Join(dir, "hrdash", "session.json")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
