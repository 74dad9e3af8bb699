package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	UploadPath     string // Base path for uploaded images
	UploadSweep    string // Cron schedule for the upload janitor
	JWTSecret      string
	AllowedOrigins []string
}

// Load loads configuration from environment variables or sets defaults.
// JWT_SECRET has no default; the process must not start signing tokens
// with an empty key.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./acebook.db"),
		UploadPath:     getEnv("UPLOAD_PATH", "./uploads"),
		UploadSweep:    getEnv("UPLOAD_SWEEP_SCHEDULE", "@hourly"),
		JWTSecret:      secret,
		AllowedOrigins: []string{getEnv("FRONTEND_ORIGIN", "http://localhost:3000")},
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
