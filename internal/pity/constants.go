package pity

// Error message string constants
const (
	ErrMsgUserIDRequired          = "user ID is required"
	ErrMsgGetCountersFailed       = "failed to get pity counters: %w"
	ErrMsgSaveCountersFailed      = "failed to save pity counters: %w"
	ErrContextFailedToReadFile    = "failed to read pity thresholds file"
	ErrContextFailedToParseFile   = "failed to parse pity thresholds"
	ErrContextInvalidThresholds   = "invalid pity thresholds"
)

// Log message constants
const (
	LogMsgCountersSaved     = "Pity counters saved"
	LogMsgFailedToSave      = "Failed to save pity counters"
)
