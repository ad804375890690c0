package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Auth      AuthConfig
	Gemini    GeminiConfig
	Simulator SimulatorConfig
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

// AuthConfig holds session cookie configuration.
// SessionKey must be a base64 fernet key; when empty an ephemeral key is
// generated at startup and sessions do not survive restarts.
type AuthConfig struct {
	SessionKey string
	SessionTTL time.Duration
}

// GeminiConfig holds the chat assistant configuration. An empty APIKey
// disables the assistant; the chat endpoints then serve fallback responses.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// SimulatorConfig holds price simulation configuration. Schedule is an
// optional cron expression that runs the random-walk tick automatically.
type SimulatorConfig struct {
	Schedule   string
	Volatility float64
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	volatility, err := strconv.ParseFloat(getEnv("SIM_VOLATILITY", "0.02"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_VOLATILITY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stock_market.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Auth: AuthConfig{
			SessionKey: getEnv("SESSION_KEY", ""),
			SessionTTL: sessionTTL,
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Simulator: SimulatorConfig{
			Schedule:   getEnv("SIM_SCHEDULE", ""),
			Volatility: volatility,
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
