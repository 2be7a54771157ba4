package entropy

// ============================================================================
// Derivation
// ============================================================================

const (
	// ServerSeedBytes is the size of a freshly generated server seed.
	ServerSeedBytes = 32

	// streamFloatBits is how many bits of each per-index digest become the
	// float mantissa. 53 bits is the full precision of a float64 in [0,1).
	streamFloatBits = 53

	// RetiredEpochsKept bounds how many revealed seeds stay available for
	// audit. At the default hourly rotation this covers six weeks of draws.
	RetiredEpochsKept = 1024
)

// ============================================================================
// Nonce tracking
// ============================================================================

const (
	// NonceCacheSize bounds the per-account nonce map. Evicting a cold entry
	// restarts that account's sequence, which is safe: nonces only need to be
	// monotonic within an active session.
	NonceCacheSize = 10000
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToGenerateSeed = "failed to generate server seed"
)
