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
	Environment string
	LogLevel    string

	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	RootPath        string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver      string
	PostgresURL string
	SQLitePath  string
	MaxConns    int
	MaxLifetime time.Duration
}

// AuthConfig selects and configures the identity provider
type AuthConfig struct {
	Provider          string
	FirebaseProjectID string
	GoogleClientID    string
	JWTSecret         string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderFirebase = "firebase"
	ProviderGoogle   = "google"
	ProviderHMAC     = "hmac"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			RootPath:        strings.TrimSuffix(getEnv("API_ROOT_PATH", ""), "/"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", DriverPostgres),
			PostgresURL: os.Getenv("POSTGRES_URL"),
			SQLitePath:  getEnv("SQLITE_PATH", "file::memory:"),
			MaxConns:    getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Auth: AuthConfig{
			Provider:          getEnv("AUTH_PROVIDER", ProviderFirebase),
			FirebaseProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
			GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, production or test, got %q", c.Environment)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DB_DRIVER=postgres")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}

	switch c.Auth.Provider {
	case ProviderFirebase:
		if c.Auth.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_PROVIDER=firebase")
		}
	case ProviderGoogle:
		if c.Auth.GoogleClientID == "" {
			return fmt.Errorf("GOOGLE_CLIENT_ID is required when AUTH_PROVIDER=google")
		}
	case ProviderHMAC:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=hmac")
		}
		if c.Environment == "production" {
			log.Println("Warning: AUTH_PROVIDER=hmac accepts locally signed tokens; do not use it in production.")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be firebase, google or hmac, got %q", c.Auth.Provider)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
