package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	UpdatePolicyStrip  = "strip"
	UpdatePolicyReject = "reject"
)

type Config struct {
	Addr               string
	DataDir            string
	JWTSecret          string
	FrontendDir        string
	Environment        string
	AdminEmail         string
	AdminPassword      string
	UpdatePolicy       string
	MaxBodyBytes       int64
	RateLimitPerMinute int
}

func Load() Config {
	// A missing .env file is fine; real env vars win either way.
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DataDir:            getEnv("DATA_DIR", "data"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		FrontendDir:        getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:        getEnv("APP_ENV", "development"),
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@hrms.com"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin123"),
		UpdatePolicy:       getEnv("UPDATE_POLICY", UpdatePolicyStrip),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.AdminPassword == "admin123" {
		return fmt.Errorf("ADMIN_PASSWORD must be changed in production")
	}
	if c.UpdatePolicy != UpdatePolicyStrip && c.UpdatePolicy != UpdatePolicyReject {
		return fmt.Errorf("UPDATE_POLICY must be %q or %q", UpdatePolicyStrip, UpdatePolicyReject)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}
