package domain

import "time"

// ViolationType classifies a detected anomaly.
type ViolationType string

const (
	ViolationRateLimitExceeded ViolationType = "rate_limit_exceeded"
	ViolationBurstUsage        ViolationType = "burst_usage"
	ViolationEntropyMismatch   ViolationType = "entropy_mismatch"
	ViolationClientTampering   ViolationType = "client_tampering"
	ViolationNonceReplay       ViolationType = "nonce_replay"
	ViolationAuthFailure       ViolationType = "auth_failure"
)

// Severity grades a violation for escalation purposes.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SecurityViolation is an immutable ledger entry created by a detector
// (rate limiter, entropy verifier, replay detector). The ban system
// aggregates these to decide escalation.
type SecurityViolation struct {
	ID          string        `json:"id"`
	Type        ViolationType `json:"type"`
	Severity    Severity      `json:"severity"`
	Fingerprint string        `json:"fingerprint"`
	Details     string        `json:"details,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

// StandingState is the account standing state machine:
// clean -> warned -> muted -> suspended -> banned.
type StandingState string

const (
	StandingClean     StandingState = "clean"
	StandingWarned    StandingState = "warned"
	StandingMuted     StandingState = "muted"
	StandingSuspended StandingState = "suspended"
	StandingBanned    StandingState = "banned"
)

var standingRank = map[StandingState]int{
	StandingClean:     0,
	StandingWarned:    1,
	StandingMuted:     2,
	StandingSuspended: 3,
	StandingBanned:    4,
}

// Rank returns the escalation position of the state (clean=0).
func (s StandingState) Rank() int {
	return standingRank[s]
}

// Standing is the computed answer to "is this account restricted right now".
// It is always derived from the violation history and the current time;
// expiry is evaluated lazily, never by a background sweep.
type Standing struct {
	Fingerprint string        `json:"fingerprint"`
	State       StandingState `json:"state"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
	Permanent   bool          `json:"permanent"`
	Reason      string        `json:"reason,omitempty"`
}

// Blocked reports whether the standing prevents opening packs at the given time.
func (s Standing) Blocked(now time.Time) bool {
	if s.State != StandingSuspended && s.State != StandingBanned {
		return false
	}
	if s.Permanent {
		return true
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}
