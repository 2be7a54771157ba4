package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                 8080,
		APIKey:               "test-key",
		RateLimitMax:         10,
		RateLimitWindow:      time.Minute,
		RateLimitBurst:       3,
		RateLimitVerifyMax:   30,
		SeedRotationInterval: time.Hour,
		ViolationWindow:      24 * time.Hour,
		RetentionDays:        30,
		CleanupInterval:      6 * time.Hour,
		PackTablesPath:       "configs/pack_tables.json",
		PityThresholdsPath:   "configs/pity_thresholds.json",
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadRateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimitMax = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.RateLimitBurst = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.RateLimitWindow = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultRateLimitMax, cfg.RateLimitMax)
	assert.Equal(t, time.Duration(DefaultRateLimitWindowSeconds)*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, time.Duration(DefaultSeedRotationMinutes)*time.Minute, cfg.SeedRotationInterval)
	assert.Equal(t, DefaultPackTablesPath, cfg.PackTablesPath)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "h",
		DBPort:     "5432",
		DBName:     "d",
	}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.GetDBConnString())
}
