package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                int
	LogLevel            string
	DevMode             bool
	MaxSimulationMonths int     // Hard cap on simulated payoff months (30-year default)
	DefaultDriftPct     float64 // Default rebalancing drift threshold in percentage points
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnvAsInt("PORT", 8080),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DevMode:             getEnvAsBool("DEV_MODE", false),
		MaxSimulationMonths: getEnvAsInt("MAX_SIMULATION_MONTHS", 360),
		DefaultDriftPct:     getEnvAsFloat("DEFAULT_DRIFT_THRESHOLD", 5.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxSimulationMonths <= 0 {
		return fmt.Errorf("MAX_SIMULATION_MONTHS must be positive, got %d", c.MaxSimulationMonths)
	}
	if c.DefaultDriftPct < 0 {
		return fmt.Errorf("DEFAULT_DRIFT_THRESHOLD must not be negative, got %f", c.DefaultDriftPct)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
