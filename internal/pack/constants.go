package pack

// ============================================================================
// Entropy stream layout
// ============================================================================

// The float stream is consumed in fixed blocks so a replay lines up with the
// original draw: for an N-slot pack, indices [0,N) drive rarity, [N,2N)
// drive holo, [2N,3N) bind cards.
const (
	streamBlockRarity  = 0
	streamBlockHolo    = 1
	streamBlockBinding = 2
)

// Pity trigger kinds for metrics
const (
	PityKindSoft = "soft"
	PityKindHard = "hard"
)

// Verification result labels for metrics
const (
	VerifyResultValid   = "valid"
	VerifyResultInvalid = "invalid"
)

// Verification anomaly codes
const (
	AnomalyHashMismatch    = "hash_mismatch"
	AnomalyCardCount       = "card_count_mismatch"
	AnomalyBestRarity      = "best_rarity_mismatch"
	AnomalyNonceReplay     = "nonce_replay"
	AnomalyUnknownPackType = "unknown_pack_type"
	AnomalyFmtSlotRarity   = "slot_%d_rarity_mismatch"
	AnomalyFmtSlotHolo     = "slot_%d_holo_mismatch"
	AnomalyFmtSlotCard     = "slot_%d_card_mismatch"
)

// VerifiedRecordCacheSize bounds the duplicate-submission cache on the audit
// path.
const VerifiedRecordCacheSize = 4096

// Error message string constants
const (
	ErrMsgIdentityRequired = "user ID or fingerprint is required"
	ErrMsgAssembleFailed   = "failed to assemble pack: %w"
)

// Violation detail messages
const (
	DetailRateLimitExceeded = "pack open blocked by rate limit"
	DetailBurstUsage        = "pack open admitted via burst allowance"
	DetailStaleCommitment   = "draw pinned to a retired seed commitment"
	DetailVerifyMismatch    = "claimed pack does not replay from its entropy record"
	DetailNonceReplay       = "conflicting pack submitted for an already-verified nonce"
)

// Log message constants
const (
	LogMsgPackOpened        = "Pack opened"
	LogMsgPackVerified      = "Pack verified"
	LogMsgDrawRejected      = "Draw rejected"
	LogMsgEventPublishError = "Failed to publish pack event"
)
