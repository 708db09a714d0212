package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (search analytics, optional)
	Database DatabaseConfig

	// JWT configuration (session tokens)
	JWT JWTConfig

	// Session store configuration
	Session SessionConfig

	// Simulated payment configuration
	Payment PaymentConfig

	// Domain event configuration
	Events EventsConfig

	// E-ticket configuration
	Ticket TicketConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration.
// An empty URL disables search analytics.
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// SessionConfig selects and configures the session store
type SessionConfig struct {
	Store           string // "memory" or "redis"
	TTL             time.Duration
	CleanupSchedule string // cron schedule for purging expired in-memory state
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// PaymentConfig holds the delays of the simulated payment
type PaymentConfig struct {
	ProcessingDelay time.Duration
	ConfirmDelay    time.Duration
}

// EventsConfig holds the AMQP broker settings. An empty URL disables publishing.
type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

// TicketConfig holds e-ticket settings
type TicketConfig struct {
	VerifyBaseURL string // QR codes link to <VerifyBaseURL>/<booking id>
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			SessionExpiry: time.Duration(getEnvAsInt("JWT_SESSION_TOKEN_EXPIRY", 7200)) * time.Second,
		},
		Session: SessionConfig{
			Store:           getEnv("SESSION_STORE", "memory"),
			TTL:             time.Duration(getEnvAsInt("SESSION_TTL", 7200)) * time.Second,
			CleanupSchedule: getEnv("SESSION_CLEANUP_SCHEDULE", "*/5 * * * *"),
			RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:         getEnvAsInt("REDIS_DB", 0),
		},
		Payment: PaymentConfig{
			ProcessingDelay: time.Duration(getEnvAsInt("PAYMENT_PROCESSING_DELAY_MS", 2000)) * time.Millisecond,
			ConfirmDelay:    time.Duration(getEnvAsInt("PAYMENT_CONFIRM_DELAY_MS", 1500)) * time.Millisecond,
		},
		Events: EventsConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "booking_events"),
		},
		Ticket: TicketConfig{
			VerifyBaseURL: getEnv("TICKET_VERIFY_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWT.Secret) < 32 && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}

	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.Payment.ProcessingDelay < 0 || c.Payment.ConfirmDelay < 0 {
		return fmt.Errorf("payment delays cannot be negative")
	}

	if c.Events.AMQPURL != "" && c.Events.Exchange == "" {
		return fmt.Errorf("AMQP_EXCHANGE is required when AMQP_URL is set")
	}

	return nil
}

// IsProduction checks if the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// AnalyticsEnabled checks if search analytics are persisted
func (c *Config) AnalyticsEnabled() bool {
	return c.Database.URL != ""
}

// EventsEnabled checks if domain events are published to a broker
func (c *Config) EventsEnabled() bool {
	return c.Events.AMQPURL != ""
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
