package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidEpoch      = "Invalid epoch parameter"

	// Pack operation error messages
	ErrMsgOpenPackFailed   = "Failed to open pack"
	ErrMsgVerifyPackFailed = "Failed to verify pack"
	ErrMsgGetPityFailed    = "Failed to retrieve pity status"

	// Entropy error messages
	ErrMsgRevealSeedFailed = "Failed to reveal server seed"

	// Account standing error messages
	ErrMsgGetStandingFailed = "Failed to retrieve account standing"

	// Security feed error messages
	ErrMsgGetEventsFailed = "Failed to retrieve security events"
)

// Machine-readable error codes returned alongside error messages so API
// clients can branch without parsing prose.
const (
	CodeRateLimited     = "rate_limited"
	CodeBanned          = "banned"
	CodeInvalidSeed     = "invalid_seed"
	CodeStaleSeed       = "stale_seed"
	CodeSeedNotRevealed = "seed_not_revealed"
	CodeNonceReplayed   = "nonce_replayed"
	CodeUnknownPackType = "unknown_pack_type"
	CodeInternalError   = "internal_error"
)
