package config

import "fmt"

// Validate checks that the configuration is usable. Configuration errors are
// deploy-time defects and must fail fast, before the engine serves a draw.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must not be negative, got %d", c.RateLimitBurst)
	}
	if c.RateLimitVerifyMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_VERIFY_MAX must be positive, got %d", c.RateLimitVerifyMax)
	}
	if c.SeedRotationInterval <= 0 {
		return fmt.Errorf("ENTROPY_ROTATION_MINUTES must be positive")
	}
	if c.ViolationWindow <= 0 {
		return fmt.Errorf("VIOLATION_WINDOW_HOURS must be positive")
	}
	if c.RetentionDays < MinRetentionDays {
		return fmt.Errorf("RETENTION_DAYS must be at least %d so timed bans outlive their evidence, got %d", MinRetentionDays, c.RetentionDays)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL_HOURS must be positive")
	}
	if c.PackTablesPath == "" {
		return fmt.Errorf("PACK_TABLES_PATH must not be empty")
	}
	if c.PityThresholdsPath == "" {
		return fmt.Errorf("PITY_THRESHOLDS_PATH must not be empty")
	}
	return nil
}
