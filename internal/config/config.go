package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralises runtime configuration. It is constructed once in main
// and injected into the components that need it; nothing reads the
// environment after startup.
type Config struct {
	HTTPPort           string
	DatabaseURL        string
	JWTSecret          string
	JWTIssuer          string
	JWTExpiry          time.Duration
	GithubClientID     string
	GithubClientSecret string
	AllowedOrigins     []string
	ReadTimeoutSec     int
	WriteTimeoutSec    int
	IdleTimeoutSec     int
}

// Load reads configuration from environment variables providing sane defaults.
// A .env file in the working directory is applied first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	httpPort := getEnv("HTTP_PORT", "")
	if httpPort == "" {
		httpPort = getEnv("PORT", "5000")
	}

	cfg := Config{
		HTTPPort:           httpPort,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "dev-social"),
		JWTExpiry:          getDurationEnv("JWT_EXPIRY", 10*time.Hour),
		GithubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GithubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		AllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeoutSec:     getIntEnv("HTTP_READ_TIMEOUT", 15),
		WriteTimeoutSec:    getIntEnv("HTTP_WRITE_TIMEOUT", 15),
		IdleTimeoutSec:     getIntEnv("HTTP_IDLE_TIMEOUT", 60),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}
