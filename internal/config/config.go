package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string // API key for authentication
	TrustedProxies []string

	// Engine configuration files
	PackTablesPath     string
	PityThresholdsPath string

	// Admission control
	RateLimitMax       int
	RateLimitWindow    time.Duration
	RateLimitBurst     int
	RateLimitVerifyMax int

	// Entropy
	SeedRotationInterval time.Duration

	// Standing escalation
	ViolationWindow time.Duration

	// Ledger and feed retention
	RetentionDays   int
	CleanupInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "packengine"),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitNonEmpty(getEnv("TRUSTED_PROXIES", "")),

		PackTablesPath:     getEnv("PACK_TABLES_PATH", DefaultPackTablesPath),
		PityThresholdsPath: getEnv("PITY_THRESHOLDS_PATH", DefaultPityThresholdsPath),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.RateLimitMax, err = getEnvInt("RATE_LIMIT_MAX", DefaultRateLimitMax)
	if err != nil {
		return nil, err
	}

	windowSeconds, err := getEnvInt("RATE_LIMIT_WINDOW_SECONDS", DefaultRateLimitWindowSeconds)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = time.Duration(windowSeconds) * time.Second

	cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", DefaultRateLimitBurst)
	if err != nil {
		return nil, err
	}

	cfg.RateLimitVerifyMax, err = getEnvInt("RATE_LIMIT_VERIFY_MAX", DefaultRateLimitVerifyMax)
	if err != nil {
		return nil, err
	}

	rotationMinutes, err := getEnvInt("ENTROPY_ROTATION_MINUTES", DefaultSeedRotationMinutes)
	if err != nil {
		return nil, err
	}
	cfg.SeedRotationInterval = time.Duration(rotationMinutes) * time.Minute

	violationHours, err := getEnvInt("VIOLATION_WINDOW_HOURS", DefaultViolationWindowHours)
	if err != nil {
		return nil, err
	}
	cfg.ViolationWindow = time.Duration(violationHours) * time.Hour

	cfg.RetentionDays, err = getEnvInt("RETENTION_DAYS", DefaultRetentionDays)
	if err != nil {
		return nil, err
	}

	cleanupHours, err := getEnvInt("CLEANUP_INTERVAL_HOURS", DefaultCleanupIntervalHours)
	if err != nil {
		return nil, err
	}
	cfg.CleanupInterval = time.Duration(cleanupHours) * time.Hour

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitNonEmpty splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
