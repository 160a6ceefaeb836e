package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabasePath is the file the holding store lives in when DB_PATH is unset.
const DefaultDatabasePath = "my_stocks_db.db"

// DefaultQuoteBaseURL is the quote page family prices are scraped from.
const DefaultQuoteBaseURL = "https://www.google.com/finance/quote"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Quote     QuoteConfig
	Portfolio PortfolioConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// QuoteConfig holds settings for the price scraper.
type QuoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PortfolioConfig holds settings for the valuation pipeline.
// Concurrency is the number of quote lookups allowed in flight; 1 keeps
// lookups strictly sequential.
type PortfolioConfig struct {
	Concurrency int
}

// LoggingConfig holds the log level name (debug, info, warn, error).
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := getEnvDuration("QUOTE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	concurrency, err := getEnvInt("PORTFOLIO_CONCURRENCY", 1)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("PORTFOLIO_CONCURRENCY must be at least 1, got %d", concurrency)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", DefaultDatabasePath),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Quote: QuoteConfig{
			BaseURL: strings.TrimRight(getEnv("QUOTE_BASE_URL", DefaultQuoteBaseURL), "/"),
			Timeout: timeout,
		},
		Portfolio: PortfolioConfig{
			Concurrency: concurrency,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
