package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Timeline anchor policies accepted by TIMELINE_ANCHOR.
const (
	AnchorCost   = "cost"
	AnchorMarket = "market"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Auth     AuthConfig
	Market   MarketConfig
	Timeline TimelineConfig
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

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Pretty bool
}

// AuthConfig holds the fernet key used to verify session tokens issued by the
// auth collaborator. Keys is a comma separated list so keys can be rotated.
type AuthConfig struct {
	Keys     []string
	TokenTTL time.Duration
}

// MarketConfig holds settings for the market-data provider.
type MarketConfig struct {
	BaseURL              string
	RequestTimeout       time.Duration
	MaxConcurrentFetches int
	CacheSize            int
	CacheTTL             time.Duration
	RiskFreeRate         float64
}

// TimelineConfig controls how the reconstructed value timeline is anchored.
type TimelineConfig struct {
	Anchor string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", false),
		},
		Auth: AuthConfig{
			Keys:     getEnvAsList("AUTH_FERNET_KEYS", nil),
			TokenTTL: getEnvAsDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		},
		Market: MarketConfig{
			BaseURL:              getEnv("MARKET_BASE_URL", "https://query1.finance.yahoo.com"),
			RequestTimeout:       getEnvAsDuration("MARKET_REQUEST_TIMEOUT", 10*time.Second),
			MaxConcurrentFetches: getEnvAsInt("MARKET_MAX_CONCURRENT_FETCHES", 8),
			CacheSize:            getEnvAsInt("MARKET_CACHE_SIZE", 256),
			CacheTTL:             getEnvAsDuration("MARKET_CACHE_TTL", 15*time.Minute),
			RiskFreeRate:         getEnvAsFloat("RISK_FREE_RATE", 0.02),
		},
		Timeline: TimelineConfig{
			Anchor: getEnv("TIMELINE_ANCHOR", AnchorCost),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.Market.RequestTimeout <= 0 {
		return fmt.Errorf("MARKET_REQUEST_TIMEOUT must be positive, got %s", c.Market.RequestTimeout)
	}
	if c.Market.MaxConcurrentFetches < 1 {
		return fmt.Errorf("MARKET_MAX_CONCURRENT_FETCHES must be at least 1, got %d", c.Market.MaxConcurrentFetches)
	}
	if c.Market.CacheSize < 0 {
		return fmt.Errorf("MARKET_CACHE_SIZE cannot be negative, got %d", c.Market.CacheSize)
	}
	switch c.Timeline.Anchor {
	case AnchorCost, AnchorMarket:
	default:
		return fmt.Errorf("TIMELINE_ANCHOR must be %q or %q, got %q", AnchorCost, AnchorMarket, c.Timeline.Anchor)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
