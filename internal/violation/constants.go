package violation

import "time"

// ============================================================================
// Escalation policy
// ============================================================================

// Violation counts within the rolling window that trigger each standing.
// A single critical violation bypasses the ladder entirely.
const (
	WarnedLowCount      = 10
	MutedMediumCount    = 5
	SuspendedHighCount  = 3
	BannedHighCount     = 6
)

// Restriction durations, measured from the newest qualifying violation.
const (
	MutedDuration     = time.Hour
	SuspendedDuration = 24 * time.Hour
	BannedDuration    = 7 * 24 * time.Hour
)

// ============================================================================
// Standing reasons
// ============================================================================

const (
	ReasonCriticalViolation = "critical violation"
	ReasonRepeatedHigh      = "repeated high-severity violations"
	ReasonRepeatedMedium    = "repeated medium-severity violations"
	ReasonRepeatedLow       = "repeated low-severity violations"
)

// Error message string constants
const (
	ErrMsgFingerprintRequired = "fingerprint is required"
	ErrMsgListFailed          = "failed to list violations: %w"
)

// Log message constants
const (
	LogMsgViolationRecorded    = "Security violation recorded"
	LogMsgLedgerWriteFailed    = "Failed to persist violation, escalation continues"
	LogMsgStandingChanged      = "Account standing changed"
	LogMsgStandingCheckFailed  = "Failed to re-evaluate standing"
	LogMsgStandingEventFailed  = "Failed to publish standing event"
	LogMsgViolationEventFailed = "Failed to publish violation event"
)
