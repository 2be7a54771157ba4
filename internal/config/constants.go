package config

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPort is the HTTP listen port when PORT is unset
	DefaultPort = 8080

	// DefaultPackTablesPath is the pack blueprint configuration file
	DefaultPackTablesPath = "configs/pack_tables.json"

	// DefaultPityThresholdsPath is the pity threshold configuration file
	DefaultPityThresholdsPath = "configs/pity_thresholds.json"

	// DefaultRateLimitMax is the nominal pack-open cap per window
	DefaultRateLimitMax = 10

	// DefaultRateLimitWindowSeconds is the sliding window length
	DefaultRateLimitWindowSeconds = 60

	// DefaultRateLimitBurst is the extra allowance beyond the nominal cap
	DefaultRateLimitBurst = 3

	// DefaultRateLimitVerifyMax is the audit-endpoint cap per window; audits
	// are cheap replays, so they get more headroom than draws
	DefaultRateLimitVerifyMax = 30

	// DefaultSeedRotationMinutes is how often the server seed epoch rotates
	DefaultSeedRotationMinutes = 60

	// DefaultViolationWindowHours is the rolling period for standing escalation
	DefaultViolationWindowHours = 24

	// DefaultRetentionDays is how long ledger and feed rows are kept.
	// Must exceed the longest timed ban, or expiring rows would lift it.
	DefaultRetentionDays = 30

	// DefaultCleanupIntervalHours is how often the retention job runs
	DefaultCleanupIntervalHours = 6

	// MinRetentionDays keeps retention longer than the 7-day ban duration
	MinRetentionDays = 8
)
