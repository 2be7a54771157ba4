package ratelimit

// ============================================================================
// Actions
// ============================================================================

// Rate-limited action names. Limits are tracked per (key, action) pair.
const (
	ActionOpenPack   = "open_pack"
	ActionVerifyPack = "verify_pack"
)

// ============================================================================
// Housekeeping
// ============================================================================

const (
	// pruneEvery bounds how often the limiter sweeps fully expired entries
	// out of the map, counted in Check calls.
	pruneEvery = 1024
)

// Log message constants
const (
	LogMsgRequestBlocked = "Rate limit exceeded"
	LogMsgBurstUsed      = "Burst allowance used"
)
