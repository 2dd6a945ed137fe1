package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port          string
	Environment   string
	PublicBaseURL string
	Timezone      string

	// Database
	DatabaseURL string

	// Billing
	DefaultBillAmount int
	ProofExpiryDays   int

	// Proof uploads
	ProofMaxBytes     int64
	ProofMaxDimension int

	// Signed proof links
	ProofTokenSecret     string
	ProofTokenTTLMinutes int

	// Storage
	StorageDriver string
	StoragePath   string
	GCSBucket     string
	GCSPublicURLs bool

	// Snapshot cache
	RedisAddr     string
	CacheTTLHours int

	// Background Workers
	WorkerCount      int
	DailySummaryHour int

	// CORS
	AllowedOrigins []string

	// Email (Resend)
	EnableEmailNotifications bool
	ResendAPIKey             string
	FromEmail                string
	OperatorEmail            string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                     getEnv("PORT", "8080"),
		Environment:              getEnv("ENVIRONMENT", "development"),
		PublicBaseURL:            strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		Timezone:                 getEnv("TIMEZONE", "Asia/Jakarta"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		DefaultBillAmount:        getEnvAsInt("DEFAULT_BILL_AMOUNT", 100000),
		ProofExpiryDays:          getEnvAsInt("PROOF_EXPIRY_DAYS", 40),
		ProofMaxBytes:            int64(getEnvAsInt("PROOF_MAX_BYTES", 5*1024*1024)),
		ProofMaxDimension:        getEnvAsInt("PROOF_MAX_DIMENSION", 1600),
		ProofTokenSecret:         getEnv("PROOF_TOKEN_SECRET", ""),
		ProofTokenTTLMinutes:     getEnvAsInt("PROOF_TOKEN_TTL_MINUTES", 30),
		StorageDriver:            getEnv("STORAGE_DRIVER", "local"),
		StoragePath:              getEnv("STORAGE_PATH", "./storage"),
		GCSBucket:                getEnv("GCS_BUCKET", "payment-proofs"),
		GCSPublicURLs:            getEnvAsBool("GCS_PUBLIC_URLS", false),
		RedisAddr:                getEnv("REDIS_ADDR", ""),
		CacheTTLHours:            getEnvAsInt("CACHE_TTL_HOURS", 72),
		WorkerCount:              getEnvAsInt("WORKER_COUNT", 2),
		DailySummaryHour:         getEnvAsInt("DAILY_SUMMARY_HOUR", 20),
		AllowedOrigins:           getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableEmailNotifications: getEnvAsBool("ENABLE_EMAIL_NOTIFICATIONS", false),
		ResendAPIKey:             getEnv("RESEND_API_KEY", ""),
		FromEmail:                getEnv("FROM_EMAIL", "noreply@tagihwarga.app"),
		OperatorEmail:            getEnv("OPERATOR_EMAIL", ""),
		SentryDSN:                getEnv("SENTRY_DSN", ""),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.StorageDriver != "local" && cfg.StorageDriver != "gcs" {
		return nil, fmt.Errorf("STORAGE_DRIVER must be local or gcs, got %q", cfg.StorageDriver)
	}

	if cfg.ProofExpiryDays <= 0 {
		return nil, fmt.Errorf("PROOF_EXPIRY_DAYS must be positive")
	}

	if cfg.DailySummaryHour < 0 || cfg.DailySummaryHour > 23 {
		return nil, fmt.Errorf("DAILY_SUMMARY_HOUR must be between 0 and 23")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if cfg.ProofTokenSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("PROOF_TOKEN_SECRET is required in production")
	}

	// Set default token secret for development
	if cfg.ProofTokenSecret == "" {
		cfg.ProofTokenSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// Location returns the operator's timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
